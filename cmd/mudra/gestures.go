package main

import (
	"github.com/spf13/cobra"
)

func newGesturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gestures",
		Short: "List the recognized gestures and what they do",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printGuide(cmd.OutOrStdout())
		},
	}
}
