package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/streamrelay/relay/pkg/constants"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "streamrelay",
	Short:   "WebRTC signaling relay for rooms of peers",
	Long:    `streamrelay is a websocket signaling server. Peers join named rooms and exchange SDP offers, answers and ICE candidates through it while their media flows peer to peer.`,
	Version: constants.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
