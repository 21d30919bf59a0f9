package ai

import (
	"strings"

	"airrvie/entities"
)

type ruleResponder struct{}

// NewRules returns the keyword-driven responder. It is the default and the
// fallback when no model endpoint is configured.
func NewRules() Responder { return &ruleResponder{} }

type rule struct {
	keyword string
	content string
	actions []string
}

// Ordered: the first keyword found in the message wins.
var rules = []rule{
	{
		keyword: "vàng lá",
		content: "Lúa bị vàng lá có thể do nhiều nguyên nhân:\n\n1. **Thiếu dinh dưỡng**: Cần bón phân NPK cân đối\n2. **Ngập úng**: Kiểm tra và điều chỉnh mực nước\n3. **Sâu bệnh**: Quan sát kỹ để xác định loại sâu bệnh cụ thể\n\nBạn có thể chụp ảnh gửi cho tôi để phân tích kỹ hơn.",
		actions: []string{"kiểm tra mực nước", "bón phân", "chụp ảnh"},
	},
	{
		keyword: "bón phân",
		content: "Bón phân cho lúa nên chia làm 3 đợt chính:\n\n• **Đợt 1**: 7-10 ngày sau sạ (bón thúc)\n• **Đợt 2**: 18-22 ngày (bón đón đòng)\n• **Đợt 3**: 40-45 ngày (bón nuôi hạt)\n\nLiều lượng tùy thuộc vào giống lúa và điều kiện đất đai.",
		actions: []string{"kiểm tra giai đoạn sinh trưởng", "xác định loại phân"},
	},
	{
		keyword: "mực nước",
		content: "Quản lý mực nước cho lúa:\n\n• **Giai đoạn mạ**: Giữ ẩm, không ngập\n• **Giai đoạn đẻ nhánh**: Ngập 3-5cm\n• **Giai đoạn làm đòng**: Ngập 5-7cm\n• **Giai đoạn chín**: Rút nước từ từ\n\nLuôn theo dõi thời tiết để điều chỉnh phù hợp.",
		actions: []string{"kiểm tra giai đoạn", "điều chỉnh mực nước"},
	},
	{
		keyword: "sâu cuốn lá",
		content: "Phòng trừ sâu cuốn lá:\n\n• **Biện pháp sinh học**: Bảo vệ thiên địch\n• **Biện pháp hóa học**: Sử dụng thuốc khi mật độ sâu > 20 con/m²\n• **Thời điểm phun**: Sâu tuổi 1-2\n\nNên phun vào sáng sớm hoặc chiều mát.",
		actions: []string{"kiểm tra mật độ sâu", "chuẩn bị thuốc"},
	},
}

const defaultContent = "Cảm ơn câu hỏi của bạn! Tôi là trợ lý nông nghiệp AIRRVie, có thể giúp bạn với:\n\n• Kỹ thuật trồng lúa\n• Quản lý sâu bệnh\n• Bón phân và tưới tiêu\n• Chọn giống phù hợp\n\nHãy mô tả cụ thể vấn đề bạn đang gặp phải."

func (r *ruleResponder) Respond(message string, _ entities.JSONMap, plot *PlotContext) (Reply, error) {
	lower := strings.ToLower(message)
	for _, rl := range rules {
		if strings.Contains(lower, rl.keyword) {
			return withPlot(Reply{
				Content:  rl.content,
				Metadata: entities.JSONMap{"suggested_actions": rl.actions},
			}, plot), nil
		}
	}
	return withPlot(Reply{
		Content:  defaultContent,
		Metadata: entities.JSONMap{"suggested_actions": []string{"mô tả vấn đề", "chụp ảnh", "cung cấp thông tin plot"}},
	}, plot), nil
}

func withPlot(rep Reply, plot *PlotContext) Reply {
	if plot == nil {
		return rep
	}
	rep.Metadata["plot"] = map[string]string{
		"plotName": plot.PlotName,
		"variety":  plot.Variety,
		"soilType": plot.SoilType,
		"farmName": plot.FarmName,
	}
	return rep
}
