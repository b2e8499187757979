package main

import (
	"context"
	"fmt"

	"github.com/dusk-indust/astgen/internal/rpc"
	"github.com/dusk-indust/astgen/internal/syntax"
)

func runLanguages(flags cliFlags) error {
	if flags.Remote != "" {
		client := rpc.NewClient()
		languages, err := client.Languages(context.Background(), flags.Remote)
		if err != nil {
			return err
		}
		fmt.Println(languages)
		return nil
	}

	fmt.Println(syntax.GetSupportedLanguages())
	return nil
}
