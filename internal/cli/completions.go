package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// completeAspectRatios provides shell completion for --aspect-ratio.
func completeAspectRatios(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, r := range flashbooth.AspectRatios {
		if strings.HasPrefix(string(r), toComplete) {
			matches = append(matches, string(r))
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeImageFiles restricts file completion to common image extensions.
func completeImageFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 && cmd.Name() == "vibe" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"jpg", "jpeg", "png", "webp"}, cobra.ShellCompDirectiveFilterFileExt
}
