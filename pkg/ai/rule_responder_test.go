package ai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"airrvie/entities"
	"airrvie/pkg/ai"
)

func TestKeywordMatch(t *testing.T) {
	r := ai.NewRules()

	rep, err := r.Respond("Lúa nhà tôi bị VÀNG LÁ nặng lắm", nil, nil)
	require.NoError(t, err)
	require.Contains(t, rep.Content, "vàng lá")
	require.NotEmpty(t, rep.Metadata["suggested_actions"])
}

func TestDefaultAnswerForUnknownQuestion(t *testing.T) {
	r := ai.NewRules()

	rep, err := r.Respond("xin chào", entities.JSONMap{}, nil)
	require.NoError(t, err)
	require.Contains(t, rep.Content, "AIRRVie")
}

func TestPlotContextAnnotatesMetadata(t *testing.T) {
	r := ai.NewRules()

	rep, err := r.Respond("bón phân thế nào", nil, &ai.PlotContext{
		PlotName: "Thửa A", Variety: "OM5451", SoilType: "alluvial", FarmName: "Nhà",
	})
	require.NoError(t, err)

	plot, ok := rep.Metadata["plot"].(map[string]string)
	require.True(t, ok)
	require.Equal(t, "Thửa A", plot["plotName"])
	require.Equal(t, "OM5451", plot["variety"])
}
