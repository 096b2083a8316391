package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/valist-go/pkg/valist/host"
)

func newRunCmd(a *app) *cobra.Command {
	var lib string
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Load a built libvalist and print what its callbacks receive",
		Example: "  valist-go run\n  valist-go run --lib build/libvalist.x64.so",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lib") {
				a.cfg.Library = lib
			}
			if a.cfg.Library == "" {
				a.cfg.Library = host.DefaultLibraryPath(".")
			}
			return a.run()
		},
	}
	cmd.Flags().StringVar(&lib, "lib", "", "Path to the shared library (default build/libvalist.<arch>.so)")
	return cmd
}

func (a *app) run() error {
	lib, err := host.Open(a.cfg.Library, host.WithLogger(a.log.With("component", "host")))
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	for i := 0; i < a.cfg.Count; i++ {
		line, err := lib.TriggerFormatted()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, line)
	}

	if lib.HasTagged() {
		line, _, err := lib.TriggerTagged()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "tagged: %s\n", line)
	}
	return nil
}
