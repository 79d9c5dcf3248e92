package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitruvian-labs/vitruvian/pkg/schema"
	"github.com/vitruvian-labs/vitruvian/pkg/types"
)

func newRootCmd(cfg Config) *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Export and check the JSON Schemas of entity components",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", cfg.SchemaDir, "directory holding the schema files")

	root.AddCommand(
		&cobra.Command{
			Use:   "export",
			Short: "Write a schema file for every component and for the entity record",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				reg, err := newRegistry()
				if err != nil {
					return err
				}
				if err := reg.Export(dir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d schemas to %s\n", len(reg.Names())+1, dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Fail if a stored schema is missing or differs from the current types",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				reg, err := newRegistry()
				if err != nil {
					return err
				}
				if err := reg.Check(dir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schemas in %s are up to date\n", dir)
				return nil
			},
		},
	)
	return root
}

func newRegistry() (*schema.Registry, error) {
	reg := schema.NewRegistry()
	if err := types.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
