package lexicon

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentions(t *testing.T) {
	l := New()
	tests := []struct {
		tag  string
		text string
		want bool
	}{
		{"python", "what python work has he done", true},
		{"cpp", "any c++ projects?", true},
		{"nextjs", "built with next.js and react", true},
		{"cicd", "set up ci/cd pipelines", true},
		{"ai", "he maintains services", false},
		{"java", "javascript projects", false},
		{"go", "where did he go to school", false},
		{"go", "golang services", true},
		{"unknown_tag", "anything", false},
	}
	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Mentions(tt.tag, tt.text))
		})
	}
}

func TestDescribes_BroadTagNeedsMember(t *testing.T) {
	l := New()
	assert.False(t, l.Describes("database", "designed the database layer"))
	assert.True(t, l.Describes("database", "stored notes in mongodb"))
	assert.True(t, l.Describes("python", "python services"))

	tag, ok := l.Lookup("database")
	require.True(t, ok)
	assert.True(t, tag.Broad())
	assert.True(t, l.Mentions("database", "any database experience"))
}

func TestStrip(t *testing.T) {
	l := New()
	assert.Equal(t, "spenza with ", l.Strip("spenza with python"))
	assert.Equal(t, "acme corp", l.Strip("acme corp"))
	assert.NotContains(t, l.Strip("experience in machine learning"), "machine")
}

func TestVocabulary_StoplistAndFirstRegistration(t *testing.T) {
	l := New(WithTags([]Tag{
		{Name: "a", Synonyms: []string{"shared", "project", "alpha"}},
		{Name: "b", Synonyms: []string{"shared", "beta"}},
	}))
	got := map[string]string{}
	for _, term := range l.Vocabulary() {
		got[term.Text] = term.Tag
	}
	assert.Equal(t, map[string]string{"shared": "a", "alpha": "a", "beta": "b"}, got)
}

type stubSimilar struct {
	terms []string
	err   error
	calls int
}

func (s *stubSimilar) Similar(context.Context, string) ([]string, error) {
	s.calls++
	return s.terms, s.err
}

func TestRelated(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		tag        string
		semantic   *stubSimilar
		want       []string
		wantSource Source
	}{
		{"graph", "redis", nil, []string{"mongodb", "database"}, SourceGraph},
		{"graph wins over semantic", "mysql", &stubSimilar{terms: []string{"x"}}, []string{"postgresql", "database"}, SourceGraph},
		{"semantic", "terraform", &stubSimilar{terms: []string{"aws"}}, []string{"aws"}, SourceSemantic},
		{"semantic error degrades to category", "graphdb", &stubSimilar{err: errors.New("down")}, []string{"database", "mongodb"}, SourceCategory},
		{"category without semantic", "frontend_stuff", nil, []string{"javascript", "web_development"}, SourceCategory},
		{"nothing", "zzz", nil, nil, SourceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.semantic != nil {
				opts = append(opts, WithSemantic(tt.semantic))
			}
			got, src := New(opts...).Related(ctx, tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSource, src)
		})
	}
}

// vecEmbedder returns fixed vectors per text.
type vecEmbedder struct {
	vecs map[string][]float32
	fail bool
}

func (v *vecEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v.fail {
		return nil, errors.New("embedder offline")
	}
	if vec, ok := v.vecs[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 1}, nil
}

func (v *vecEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := v.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (v *vecEmbedder) Dimensions() int { return 3 }
func (v *vecEmbedder) Close() error    { return nil }

func TestSemanticIndex_Similar(t *testing.T) {
	ctx := context.Background()
	emb := &vecEmbedder{vecs: map[string][]float32{
		"terraform":  {1, 0, 0},
		"aws":        {0.9, 0.4359, 0},
		"serverless": {0.6, 0.8, 0},
		"matlab":     {0, 1, 0},
		"python":     {0, 0, 1},
	}}
	idx, err := NewSemanticIndex(ctx, emb, []string{"aws", "serverless", "matlab", "python"}, WithTopK(3), WithFloor(0.3), WithWorkers(2))
	require.NoError(t, err)

	got, err := idx.Similar(ctx, "Terraform")
	require.NoError(t, err)
	assert.Equal(t, []string{"aws", "serverless"}, got)
}

func TestSemanticIndex_Errors(t *testing.T) {
	ctx := context.Background()
	_, err := NewSemanticIndex(ctx, nil, []string{"aws"})
	assert.Error(t, err)

	_, err = NewSemanticIndex(ctx, &vecEmbedder{fail: true}, []string{"aws"})
	assert.Error(t, err)

	idx, err := NewSemanticIndex(ctx, &vecEmbedder{}, nil)
	require.NoError(t, err)
	idx.embedder = &vecEmbedder{fail: true}
	_, err = idx.Similar(ctx, "aws")
	assert.Error(t, err)
}

func TestSemanticIndex_BackedLexicon(t *testing.T) {
	ctx := context.Background()
	emb := &vecEmbedder{vecs: map[string][]float32{
		"terraform": {1, 0, 0},
		"aws":       {1, 0, 0},
	}}
	idx, err := NewSemanticIndex(ctx, emb, []string{"aws", "python"})
	require.NoError(t, err)

	got, src := New(WithSemantic(idx)).Related(ctx, "terraform")
	assert.Equal(t, []string{"aws"}, got)
	assert.Equal(t, SourceSemantic, src)
}
