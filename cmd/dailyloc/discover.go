package main

type DiscoverCmd struct {
	Roots []string `arg:"" optional:"" help:"Folders to search. Default is the configured root." type:"existingdir"`
}

func (c *DiscoverCmd) Run(ctx *appContext) error {
	_, err := ctx.ws.Discover(c.Roots)
	return err
}
