package catalog

import (
	"strings"

	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
	"github.com/iwvelando/sales-roi-forecast/pkg/validation"
)

// Model is one language model in the comparison table, with both the
// business and the technical description of it.
type Model struct {
	ID           int            `yaml:"id" json:"id"`
	Name         string         `yaml:"name" json:"model"`
	SalesWhisper bool           `yaml:"salesWhisper" json:"isSalesWhisper"`
	Business     ModelBusiness  `yaml:"business" json:"business"`
	Technical    ModelTechnical `yaml:"technical" json:"technical"`
}

// ModelBusiness describes a model in plain language.
type ModelBusiness struct {
	PrimaryUse  string `yaml:"primaryUse" json:"primaryUse"`
	Strengths   string `yaml:"strengths" json:"strengths"`
	Limitations string `yaml:"limitations" json:"limitations"`
	Accuracy    string `yaml:"accuracy" json:"accuracy"`
}

// ModelTechnical describes a model's architecture and throughput.
type ModelTechnical struct {
	Parameters      string `yaml:"parameters" json:"parameters"`
	Context         string `yaml:"context" json:"context"`
	TrainingData    string `yaml:"trainingData" json:"trainingData"`
	Finetuning      string `yaml:"finetuning" json:"finetuning"`
	ResponseTime    string `yaml:"responseTime" json:"responseTime"`
	TokenProcessing string `yaml:"tokenProcessing" json:"tokenProcessing"`
}

// PerformanceMetric scores every model on one axis of the strengths chart.
// Scores are keyed by model label and range 0-100.
type PerformanceMetric struct {
	Metric string         `yaml:"metric" json:"metric"`
	Scores map[string]int `yaml:"scores" json:"scores"`
}

// TimelineEvent is a milestone in the model history timeline.
type TimelineEvent struct {
	Year        int    `yaml:"year" json:"year"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// OutputComparison shows how each model answers the same sales situation.
type OutputComparison struct {
	Input   string         `yaml:"input" json:"input"`
	Samples []OutputSample `yaml:"samples" json:"samples"`
}

// OutputSample is one model's answer in an OutputComparison.
type OutputSample struct {
	Model    string `yaml:"model" json:"model"`
	Output   string `yaml:"output" json:"output"`
	Analysis string `yaml:"analysis" json:"analysis"`
}

// ModelColumn is a comparison table column. Key names the row value.
type ModelColumn struct {
	Key     string `json:"key"`
	Header  string `json:"header"`
	Tooltip string `json:"tooltip,omitempty"`
}

// ModelRow is one model flattened to the columns of a detail level.
type ModelRow struct {
	ID           int               `json:"id"`
	Model        string            `json:"model"`
	SalesWhisper bool              `json:"isSalesWhisper"`
	Values       map[string]string `json:"values"`
}

// ModelTable is the comparison table for one detail level.
type ModelTable struct {
	Detail   string            `json:"detail"`
	Columns  []ModelColumn     `json:"columns"`
	Rows     []ModelRow        `json:"rows"`
	Glossary map[string]string `json:"glossary,omitempty"`
}

const rlhfTerm = "RLHF"

var modelColumns = map[string][]ModelColumn{
	constants.DetailBusiness: {
		{Key: "primaryUse", Header: "Primary Use"},
		{Key: "strengths", Header: "Strengths"},
		{Key: "limitations", Header: "Limitations"},
		{Key: "accuracy", Header: "Accuracy"},
	},
	constants.DetailTechnical: {
		{Key: "parameters", Header: "Parameters", Tooltip: "Number of parameters in the neural network that determine the model's capabilities"},
		{Key: "context", Header: "Context Window", Tooltip: "How much text the model can process in a single request"},
		{Key: "trainingData", Header: "Training Data"},
		{Key: "finetuning", Header: "Fine-tuning", Tooltip: "Process of additional training on specialized data to improve performance in specific domains"},
		{Key: "responseTime", Header: "Response Time"},
		{Key: "tokenProcessing", Header: "Token Processing", Tooltip: "Speed at which the model can process text (tokens are word pieces)"},
	},
}

var glossary = map[string]string{
	rlhfTerm: "Reinforcement Learning from Human Feedback - a technique to align AI with human preferences",
}

func (m Model) values(detail string) map[string]string {
	if detail == constants.DetailTechnical {
		return map[string]string{
			"parameters":      m.Technical.Parameters,
			"context":         m.Technical.Context,
			"trainingData":    m.Technical.TrainingData,
			"finetuning":      m.Technical.Finetuning,
			"responseTime":    m.Technical.ResponseTime,
			"tokenProcessing": m.Technical.TokenProcessing,
		}
	}
	return map[string]string{
		"primaryUse":  m.Business.PrimaryUse,
		"strengths":   m.Business.Strengths,
		"limitations": m.Business.Limitations,
		"accuracy":    m.Business.Accuracy,
	}
}

// ModelTable builds the comparison table for detail, which defaults to
// business when empty. The leading model name column is implied by ModelRow.
func (c *Catalog) ModelTable(detail string) (ModelTable, error) {
	if detail == "" {
		detail = constants.DetailBusiness
	}
	if err := validation.ValidateDetailLevel(detail); err != nil {
		return ModelTable{}, err
	}

	table := ModelTable{
		Detail:  detail,
		Columns: modelColumns[detail],
		Rows:    make([]ModelRow, 0, len(c.Models)),
	}
	for _, model := range c.Models {
		row := ModelRow{
			ID:           model.ID,
			Model:        model.Name,
			SalesWhisper: model.SalesWhisper,
			Values:       model.values(detail),
		}
		if strings.Contains(row.Values["finetuning"], rlhfTerm) {
			table.Glossary = map[string]string{rlhfTerm: glossary[rlhfTerm]}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
