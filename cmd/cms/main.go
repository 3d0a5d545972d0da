package main

import (
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/smzarrabimmp/cms/cmd"
)

type options struct {
	Serve   cmd.ServeCommand   `command:"serve" alias:"s" description:"Run the group directory server"`
	Migrate cmd.MigrateCommand `command:"migrate" alias:"m" description:"Manage the schema of the SQL backend"`
}

func main() {
	parserOpts := &options{}
	parser := flags.NewParser(parserOpts, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		os.Exit(1)
	}
}
