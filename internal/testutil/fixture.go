// Package testutil provides a shared résumé corpus for tests.
package testutil

import (
	"testing"

	"github.com/hyperjump/kotae/internal/corpus"
)

// CorpusYAML is a small but complete résumé: nine projects, five jobs
// (one with an unparseable date), two publications, a blog post, two
// degrees and three skill groups. Nothing in it mentions Redis or Acme.
const CorpusYAML = `
projects:
  - id: p-portfolio-ai
    title: Portfolio AI Mode
    description: Conversational portfolio that answers questions with retrieval augmented generation.
    technologies: [Python, FastAPI, Next.js, RAG, LLM]
    date: "Jun 2025"
  - id: p-voice-agent
    title: Voice Concierge Agent
    description: Voice assistant that books appointments over the phone.
    technologies: [Python, Voice AI, LLM, AWS Lambda]
    date: "Feb 2025"
  - id: p-chrome-ext
    title: Focus Chrome Extension
    description: Browser extension that blocks distracting sites during focus sessions.
    technologies: [JavaScript, Chrome Extension]
    date: "Aug 2024"
  - id: p-mongo-notes
    title: Notes Sync Service
    description: Offline-first note syncing backend.
    technologies: [MongoDB, Python, FastAPI]
    date: "May 2024"
  - id: p-stripe-shop
    title: Indie Storefront
    description: Small e-commerce storefront with subscription billing.
    technologies: [React, Stripe, Node.js]
    date: "Oct 2023"
  - id: p-ecg-apnea
    title: Sleep Apnea Detection from ECG
    description: Deep learning classifier for apnea events in single-lead ECG recordings.
    technologies: [Python, TensorFlow, CNN]
    date: "Apr 2023"
  - id: p-eeg-bci
    title: P300 BCI Speller
    description: Brain-computer interface speller built on EEG event related potentials.
    technologies: [Python, MATLAB, EEG, Signal Processing]
    date: "Nov 2022"
  - id: p-hyperspectral
    title: Hyperspectral Unmixing Toolkit
    description: Linear mixture modeling for satellite imagery.
    technologies: [MATLAB, Remote Sensing]
    date: "Jan 2022"
  - id: p-cpp-engine
    title: Order Book Engine
    description: Low latency matching engine.
    technologies: [C++, Algorithms]
    date: "Jul 2021"
experience:
  - id: e-northwind
    role: Data Engineering Intern
    company: Northwind Analytics
    description: Built batch jobs feeding the analytics warehouse.
    technologies: [Python, Airflow]
    keywords: [ETL, data pipeline]
    dates: "Jun 2024 – Present"
  - id: e-spenza
    role: Software Engineer
    company: Spenza
    description: Telecom expense platform; owned the invoice ingestion pipeline.
    technologies: [Python, AWS, SQS, MongoDB]
    keywords: [ETL, data pipeline]
    dates: "Jan 2023 – Dec 2024"
  - id: e-robots-lab
    role: Research Assistant
    company: People and Robots Lab
    description: Studied child-robot interaction in classrooms.
    technologies: [Python]
    keywords: [robotics, HCI]
    dates: "Jun 2022 – Dec 2022"
  - id: e-defence
    role: Research Intern
    company: Defence Research Organisation
    description: Hyperspectral target detection.
    technologies: [MATLAB]
    keywords: [remote sensing]
    dates: "May 2021 – Aug 2021"
  - id: e-freelance
    role: Freelance Developer
    company: Self-employed
    description: Websites for local businesses.
    technologies: [JavaScript, React]
    dates: "Ongoing"
publications:
  - id: pub-p300
    title: Improving P300 Speller Accuracy with Ensemble CNNs
    journal: IEEE EMBC
    technologies: [CNN, EEG, Python]
    date: "Jul 2023"
  - id: pub-apnea
    title: 1D-CNN for Sleep Apnea Detection
    journal: Biomedical Signal Processing and Control
    technologies: [CNN, ECG, TensorFlow]
    date: "Mar 2022"
blog:
  - id: b-rag
    title: What I learned building RAG
    description: Notes on chunking and evaluation.
    keywords: [RAG, LLM]
    date: "Jan 2025"
education:
  - id: edu-umich
    degree: MS Robotics
    university: University of Michigan
    dates: "Aug 2024 – May 2026"
  - id: edu-bits
    degree: BE Electronics
    university: BITS Pilani
    dates: "2018 – 2022"
skills:
  programming_languages: [Python, C++, JavaScript, MATLAB]
  cloud: [AWS, Lambda, SQS]
  machine_learning: [TensorFlow, PyTorch]
`

// Corpus parses CorpusYAML, failing the test on error.
func Corpus(tb testing.TB) *corpus.Corpus {
	tb.Helper()
	c, err := corpus.Parse([]byte(CorpusYAML))
	if err != nil {
		tb.Fatalf("parse fixture corpus: %v", err)
	}
	return c
}
