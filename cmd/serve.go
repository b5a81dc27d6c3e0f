package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/server"
	"github.com/spf13/cobra"
)

var addr string

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", constants.GetListenAddr(), "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the renderer and the song list over http",
	Long: `Serves the renderer and the song list over http. Transpositions made through
the server are saved back to the song list.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadList()
		if err != nil {
			return err
		}
		defer list.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.ListenAndServe(ctx, addr, server.New(settings, list).Router())
	},
}
