package model

import "github.com/RoyceAzure/lab/pos/internal/domain/model"

const (
	SelectReportRangeCommandName CommandType = "SelectReportRange"
)

type SelectReportRangeCommand struct {
	BaseCommand
	Range model.TimeRange `json:"range"`
}

func NewSelectReportRangeCommand(r model.TimeRange) *SelectReportRangeCommand {
	return &SelectReportRangeCommand{
		BaseCommand: NewBaseCommand(),
		Range:       r,
	}
}

func (c *SelectReportRangeCommand) Type() CommandType {
	return SelectReportRangeCommandName
}
