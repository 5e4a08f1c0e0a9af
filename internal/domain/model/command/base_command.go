package model

import "github.com/google/uuid"

type BaseCommand struct {
	commandID string
}

func NewBaseCommand() BaseCommand {
	return BaseCommand{commandID: uuid.New().String()}
}

func (c *BaseCommand) GetID() string {
	return c.commandID
}

type CommandType string

// Command 收銀台上的每個使用者動作對應一個命令
type Command interface {
	Type() CommandType
	GetID() string
}
