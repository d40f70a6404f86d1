package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		raw  string
		want Label
	}{
		{"FAKE", LabelFake},
		{"LABEL_FAKE", LabelFake},
		{"false", LabelFake},
		{"Fake", LabelFake},
		{"REAL", LabelReal},
		{"Mostly True", LabelReal},
		{"true", LabelReal},
		{"Real", LabelReal},
		{"Uncertain", LabelUncertain},
		{"NEUTRAL", LabelUncertain},
		{"", LabelUncertain},
		{"garbage", LabelUncertain},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeLabel(tc.raw), "raw=%q", tc.raw)
	}
}

func TestLabelForScore(t *testing.T) {
	assert.Equal(t, LabelReal, LabelForScore(100))
	assert.Equal(t, LabelReal, LabelForScore(70))
	assert.Equal(t, LabelUncertain, LabelForScore(69))
	assert.Equal(t, LabelUncertain, LabelForScore(40))
	assert.Equal(t, LabelFake, LabelForScore(39))
	assert.Equal(t, LabelFake, LabelForScore(0))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-30))
	assert.Equal(t, 0, ClampScore(0))
	assert.Equal(t, 55, ClampScore(55))
	assert.Equal(t, 100, ClampScore(100))
	assert.Equal(t, 100, ClampScore(140))
}

func TestNewVerdict_Invariants(t *testing.T) {
	v := NewVerdict(130, "Real", "all good", nil)
	assert.Equal(t, 100, v.CredibilityScore)
	assert.Equal(t, LabelReal, v.Label)
	assert.NotNil(t, v.Sources)
	assert.Empty(t, v.Sources)

	v = NewVerdict(-10, "bogus label", "", nil)
	assert.Equal(t, 0, v.CredibilityScore)
	assert.Equal(t, LabelUncertain, v.Label)
	assert.NotEmpty(t, v.Explanation)
}

func TestNewVerdict_CapsSources(t *testing.T) {
	sources := make([]Source, 8)
	for i := range sources {
		sources[i] = Source{Title: "t", URL: "u", Snippet: "s"}
	}
	v := NewVerdict(50, "Uncertain", "x", sources)
	assert.Len(t, v.Sources, MaxDisplaySources)
}

func TestNeutralVerdict(t *testing.T) {
	v := NeutralVerdict("timed out")
	assert.Equal(t, 50, v.CredibilityScore)
	assert.Equal(t, LabelUncertain, v.Label)
	assert.Equal(t, "timed out", v.Explanation)
	assert.NotNil(t, v.Sources)
	assert.Empty(t, v.Sources)
}
