package main

type ReportDailyCmd struct {
	From string `help:"First day to show, as YYYY-MM-DD."`
	To   string `help:"Last day to show, as YYYY-MM-DD."`
}

func (c *ReportDailyCmd) Run(ctx *appContext) error {
	from, err := parseOptionalDay(c.From)
	if err != nil {
		return err
	}

	to, err := parseOptionalDay(c.To)
	if err != nil {
		return err
	}

	return ctx.ws.ReportDaily(from, to)
}

type ReportReposCmd struct {
}

func (c *ReportReposCmd) Run(ctx *appContext) error {
	return ctx.ws.ReportRepositories(ctx.ctx)
}
