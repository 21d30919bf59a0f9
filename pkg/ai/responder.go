package ai

import "airrvie/entities"

// Reply is what a Responder produces for one user message.
type Reply struct {
	Content  string
	Metadata entities.JSONMap
}

// PlotContext is the optional plot summary handed to the responder when the
// user asks about a specific plot.
type PlotContext struct {
	PlotName string
	Variety  string
	SoilType string
	FarmName string
}

type Responder interface {
	Respond(message string, convContext entities.JSONMap, plot *PlotContext) (Reply, error)
}
