package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"keypad/internal/keymap"
)

// KeysOptions holds flags for the keys command.
type KeysOptions struct {
	*RootOptions
	Keymap string
}

// KeymapListing is the JSON payload for the keys command.
type KeymapListing struct {
	Name     string           `json:"name"`
	Bindings []keymap.Binding `json:"bindings"`
}

// NewKeysCommand creates the keys command.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KeysOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the active key bindings",
		Long: `Show the key binding table for the builtin layout or a CUE profile.

Examples:
  keypad keys
  keypad keys --keymap ./profiles/letters.cue
  keypad keys --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Keymap, "keymap", "", "path to CUE keymap profile")

	return cmd
}

func runKeys(opts *KeysOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	km, err := loadKeymap(opts.Keymap)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load keymap", err)
	}

	listing := KeymapListing{
		Name:     km.Name(),
		Bindings: km.Bindings(),
	}

	if formatter.Format == "json" {
		return formatter.Success(listing)
	}

	fmt.Fprintf(formatter.Writer, "Keymap: %s\n", listing.Name)
	for _, binding := range listing.Bindings {
		fmt.Fprintf(formatter.Writer, "  %-9s -> %s\n", binding.Token, binding.Action)
	}

	return nil
}
