package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dupscan %s\n", h.cfg.Agent.Version)
		},
	}
}

func (h *Handler) detectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Available detectors:")
			fmt.Println("  - exact_match    : Byte-identical code blocks (after normalization)")
			fmt.Println("  - functional     : Functionally equivalent functions and methods")
			fmt.Println("  - pattern        : Repeated design patterns and size anti-patterns")
			fmt.Println("  - configuration  : Hardcoded configuration values and drift")
			fmt.Println("  - validation     : Duplicated validation rules")
			fmt.Println("  - error_handling : Repeated error handling and inconsistent messaging")
			fmt.Println("  - cache          : Independently implemented cache layers")
			fmt.Println("  - singleton      : Per-class singleton boilerplate")
			fmt.Println("  - service_layer  : Services with overlapping method surfaces")
		},
	}
}
