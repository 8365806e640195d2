package node_test

import (
	"log/slog"
	"map-caster/node"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Audit struct {
	CreatedBy string `json:"created_by"`
	hidden    int
}

type Account struct {
	Audit
	ID       uint8             `field:"id" json:"account_id"`
	Owner    string            `json:"owner,omitempty"`
	Balance  float32           // no tag
	Limits   [2]int            `json:"limits"`
	Ratio    *float64          `json:"ratio"`
	Labels   map[string]string `json:"labels"`
	Timeout  time.Duration     `json:"timeout"`
	Internal string            `json:"-"`
	private  string
}

func TestModelFields(t *testing.T) {
	t.Parallel()

	m, err := node.NewModel[Account]("", nil)
	require.NoError(t, err)

	assert.Equal(t, "Account", m.Name())
	assert.Equal(t, []string{"Balance", "created_by", "id", "labels", "limits", "owner", "ratio", "timeout"}, m.Fields())
	assert.Empty(t, m.Schema())
}

func TestModelBuild(t *testing.T) {
	t.Parallel()

	m, err := node.NewModel[Account]("Account", nil)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	t.Run("assignable values", func(t *testing.T) {
		rec := m.Build(map[string]any{
			"created_by": "root",
			"id":         int64(7),
			"owner":      "ann",
			"Balance":    int64(3),
			"limits":     node.Tuple{int64(1), int64(2), int64(3)},
			"ratio":      0.5,
			"labels":     map[string]any{"a": "b"},
			"timeout":    int64(time.Second),
		}, logger).(Account)

		ratio := 0.5
		assert.Equal(t, Account{
			Audit:   Audit{CreatedBy: "root"},
			ID:      7,
			Owner:   "ann",
			Balance: 3,
			Limits:  [2]int{1, 2},
			Ratio:   &ratio,
			Labels:  map[string]string{"a": "b"},
			Timeout: time.Second,
		}, rec)
	})

	t.Run("values that do not fit keep the zero value", func(t *testing.T) {
		rec := m.Build(map[string]any{
			"id":      int64(300),
			"owner":   int64(1),
			"limits":  "1,2",
			"labels":  map[string]any{"a": 1},
			"timeout": 1.5,
		}, logger).(Account)

		assert.Equal(t, Account{}, rec)
	})

	t.Run("nil clears", func(t *testing.T) {
		rec := m.Build(map[string]any{"ratio": nil, "labels": nil}, logger).(Account)
		assert.Nil(t, rec.Ratio)
		assert.Nil(t, rec.Labels)
	})
}

func TestNewModelErrors(t *testing.T) {
	t.Parallel()

	_, err := node.NewModel[int]("Int", nil)
	assert.ErrorIs(t, err, node.ErrNotAStruct)

	type clash struct {
		A string `json:"x"`
		B string `field:"x"`
	}

	_, err = node.NewModel[clash]("Clash", nil)
	assert.ErrorIs(t, err, node.ErrDuplicateField)

	_, err = node.NewModelWith[int]("", nil, nil)
	assert.ErrorIs(t, err, node.ErrEmptyName)

	assert.Panics(t, func() { node.MustModel[string]("S", nil) })
}

type celsius float64

func TestNewModelWith(t *testing.T) {
	t.Parallel()

	m, err := node.NewModelWith("Celsius", func() node.Schema {
		return node.Schema{"value": node.Float}
	}, node.Setters[celsius]{
		"value": func(rec *celsius, value any, _ *slog.Logger) {
			if f, ok := value.(float64); ok {
				*rec = celsius(f)
			}
		},
	})
	require.NoError(t, err)

	got, err := node.Populate(node.New(nil), map[string]any{"value": "21.5"}, m)
	require.NoError(t, err)
	assert.Equal(t, celsius(21.5), got)
	assert.Equal(t, []string{"value"}, m.Fields())
}

func TestSchemaEvaluatedOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	m := node.NewDynamicModel("Once", func() node.Schema {
		calls++
		return node.Schema{"a": node.Any}
	}).WithFields("b", "a")

	for range 3 {
		_, err := node.New(nil).Populate(map[string]any{}, m)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"a", "b"}, m.Fields())
}
