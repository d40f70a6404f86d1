package core

import (
	"context"
	"time"

	"github.com/bhavyasharma05/fake-news-detector/internal/core/model"
)

type mockSearch struct {
	Sources []model.Source
	Delay   time.Duration
	Calls   int
}

func (m *mockSearch) Query(ctx context.Context, text string) []model.Source {
	m.Calls++
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
		}
	}
	if m.Sources == nil {
		return []model.Source{}
	}
	return m.Sources
}

type mockFactCheck struct {
	Verdict *model.FactCheck
	Calls   int
}

func (m *mockFactCheck) Query(ctx context.Context, text string) *model.FactCheck {
	m.Calls++
	return m.Verdict
}

type mockClassifier struct {
	Label      model.Label
	Confidence float64
	Calls      int
}

func (m *mockClassifier) Classify(ctx context.Context, text string) (model.Label, float64) {
	m.Calls++
	return m.Label, m.Confidence
}

type mockReasoner struct {
	Verdict model.Verdict
	Err     error
	Panic   bool
	Calls   int
}

func (m *mockReasoner) Infer(ctx context.Context, text string, sources []model.Source, factCheck *model.FactCheck, label model.Label, confidence float64) (model.Verdict, error) {
	m.Calls++
	if m.Panic {
		panic("reasoner exploded")
	}
	if m.Err != nil {
		return model.Verdict{}, m.Err
	}
	return m.Verdict, nil
}
