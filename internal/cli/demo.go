package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/valist-go/internal/cabi"
	"github.com/hsiuhsiu/valist-go/pkg/valist"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		count  int
		native bool
	)
	cmd := &cobra.Command{
		Use:     "demo",
		Short:   "Trigger the callback in process and print the formatted line",
		Example: "  valist-go demo\n  valist-go demo --count 3 --native",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("count") {
				a.cfg.Count = count
			}
			if cmd.Flags().Changed("native") {
				a.cfg.Native = native
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.demo(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "Number of times to trigger the callback")
	cmd.Flags().BoolVar(&native, "native", false, "Also run the C va_list and tagged paths")
	return cmd
}

func (a *app) demo(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	inv, err := valist.NewInvoker(
		valist.WithLogger(a.log.With("component", "invoker")),
		valist.WithRegisterer(prometheus.NewRegistry()),
	)
	if err != nil {
		return err
	}

	for i := 0; i < a.cfg.Count; i++ {
		var line string
		var ferr error
		inv.TriggerCallback(func(format string, args *valist.Args) {
			line, ferr = valist.Sprintf(format, args)
		})
		if ferr != nil {
			return fmt.Errorf("format: %w", ferr)
		}
		fmt.Fprintln(a.out, line)
	}
	a.log.Info(ctx, "demo finished", "invocations", inv.Invocations())

	if !a.cfg.Native {
		return nil
	}
	line, err := cabi.FormatNative()
	if errors.Is(err, cabi.ErrCGONotEnabled) {
		a.log.Warn(ctx, "native path unavailable", "err", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("native: %w", err)
	}
	fmt.Fprintf(a.out, "native: %s\n", line)

	format, values, err := cabi.TaggedLoopback()
	if err != nil {
		return fmt.Errorf("tagged: %w", err)
	}
	var tagged string
	valist.ListifyAndCall(func(f string, args *valist.Args) {
		tagged, err = valist.Sprintf(f, args)
	}, format, values...)
	if err != nil {
		return fmt.Errorf("tagged: %w", err)
	}
	fmt.Fprintf(a.out, "tagged: %s\n", tagged)
	return nil
}
