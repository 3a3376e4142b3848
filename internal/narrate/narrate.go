// Package narrate asks a chat model to phrase an answer and to pick the
// cards worth showing. The step is optional: whenever the model is missing,
// slow or wrong, the engine's own result stands.
package narrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// MaxPicks is the most cards a narration may select.
const MaxPicks = 3

// ErrEmptyReply is returned when the model produced no usable text.
var ErrEmptyReply = errors.New("empty narrator reply")

// Reply is the model's answer.
type Reply struct {
	Response string   `json:"response"`
	IDs      []string `json:"ids"`
}

// Narrator wraps an OpenAI-compatible chat model.
type Narrator struct {
	model   llms.Model
	subject string
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures a Narrator.
type Option func(*Narrator)

// WithSubject sets whose résumé the model speaks about.
func WithSubject(name string) Option {
	return func(n *Narrator) {
		if name != "" {
			n.subject = name
		}
	}
}

// WithTimeout bounds each Apply call.
func WithTimeout(d time.Duration) Option {
	return func(n *Narrator) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Narrator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates a Narrator over model.
func New(model llms.Model, opts ...Option) *Narrator {
	n := &Narrator{
		model:   model,
		subject: "Nitigya",
		timeout: 8 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewOpenAI creates a Narrator backed by the chat endpoint at host. Local
// OpenAI-compatible servers need no token, so a placeholder is sent.
func NewOpenAI(host, model string, opts ...Option) (*Narrator, error) {
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create narrator client: %w", err)
	}
	return New(client, opts...), nil
}

// Narrate asks the model about res. IDs in the reply are not validated.
func (n *Narrator) Narrate(ctx context.Context, question string, res models.QueryResult) (*Reply, error) {
	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt(n.subject))},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt(question, res))},
		},
	}
	resp, err := n.model.GenerateContent(ctx, content, llms.WithTemperature(0.3), llms.WithJSONMode())
	if err != nil {
		return nil, fmt.Errorf("generate narration: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyReply
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var reply Reply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return nil, fmt.Errorf("parse narration: %w", err)
	}
	reply.Response = strings.TrimSpace(reply.Response)
	if reply.Response == "" && len(reply.IDs) == 0 {
		return nil, ErrEmptyReply
	}
	return &reply, nil
}

// Apply narrates res within the configured timeout and folds the reply in.
// A nil Narrator, an off-topic result or any failure returns res unchanged.
// The card selection is applied only when it names one to MaxPicks items
// of res.
func (n *Narrator) Apply(ctx context.Context, question string, res models.QueryResult) models.QueryResult {
	if n == nil || res.ItemType == models.ItemTypeOffTopic {
		return res
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	start := time.Now()
	reply, err := n.Narrate(ctx, question, res)
	if err != nil {
		n.logger.Debug("narration skipped", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return res
	}

	if reply.Response != "" {
		res.ResponseText = reply.Response
	}
	if picked := pick(res.Items, reply.IDs); len(picked) > 0 {
		res.Items = picked
		res.ItemType = models.ItemTypeOf(picked)
		res.Metadata.ItemType = res.ItemType
		res.Metadata.ShownResults = len(picked)
	}
	n.logger.Debug("narration applied",
		zap.Int("picked", len(reply.IDs)),
		zap.Int("items", len(res.Items)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res
}

// pick returns the items named by ids, in the order named. It returns nil
// unless between one and MaxPicks distinct ids are valid.
func pick(items []models.Record, ids []string) []models.Record {
	var out []models.Record
	var seen []string
	for _, id := range ids {
		if slices.Contains(seen, id) {
			continue
		}
		i := slices.IndexFunc(items, func(r models.Record) bool { return r.ID == id })
		if i < 0 {
			continue
		}
		seen = append(seen, id)
		out = append(out, items[i])
	}
	if len(out) == 0 || len(out) > MaxPicks {
		return nil
	}
	return out
}
