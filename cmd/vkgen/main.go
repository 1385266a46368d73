// Command vkgen writes the typed method wrappers of package vkapi.
package main

import (
	"os"

	"github.com/jrsteele09/go-vk-client/internal/gen"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	var output string

	cmd := &cobra.Command{
		Use:   "vkgen",
		Short: "Generate vkapi method wrappers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := gen.Render(gen.Methods)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			return os.WriteFile(output, src, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("vkgen failed")
	}
}
