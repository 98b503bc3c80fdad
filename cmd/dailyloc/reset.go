package main

import (
	"github.com/pescuma/dailyloc/lib/model"
)

type ResetCmd struct {
	Day string `arg:"" help:"First day to delete, as YYYY-MM-DD."`
}

func (c *ResetCmd) Run(ctx *appContext) error {
	day, err := model.ParseDay(c.Day)
	if err != nil {
		return err
	}

	_, err = ctx.ws.Reset(day)
	return err
}
