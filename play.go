package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/beka-birhanu/vinom-portfolio/config"
	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
	"github.com/beka-birhanu/vinom-portfolio/game"
	"github.com/beka-birhanu/vinom-portfolio/maze"
	"github.com/beka-birhanu/vinom-portfolio/terminal"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

var (
	mazeSize      int
	mazeSeed      int64
	mazeChunked   bool
	mazeChunkSize int
)

var mazeCmd = &cobra.Command{
	Use:   "maze",
	Short: "Print a generated maze",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := maze.Generate(mazeSize, maze.NewRand(mazeSeed))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), g.String())
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Walk the maze in this terminal",
	Long: `Walk the maze in first person. W/S or the up/down arrows move,
A/D or left/right turn, M toggles mouse look, Esc releases the mouse and Q quits.`,
	RunE: runPlay,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Hash an admin password for ADMIN_PASSWORD_HASH",
	Long:  "Checks the password strength and prints its bcrypt hash. The password is read from stdin when not given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		hash, err := dmn.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{mazeCmd, playCmd} {
		c.Flags().IntVar(&mazeSize, "size", config.Envs.MazeSize, "maze side length in cells")
		c.Flags().Int64Var(&mazeSeed, "seed", 0, "maze seed, 0 picks one")
	}
	playCmd.Flags().BoolVar(&mazeChunked, "endless", false, "grow the maze chunk by chunk instead of a fixed grid")
	playCmd.Flags().IntVar(&mazeChunkSize, "chunk-size", config.Envs.MazeChunkSize, "chunk side length for --endless")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	opts := game.DefaultOptions()
	opts.Size = mazeSize
	opts.Seed = mazeSeed
	opts.Chunked = mazeChunked
	opts.ChunkSize = mazeChunkSize

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	viewer, err := terminal.NewViewer(screen, opts)
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := viewer.Run(ctx); err != nil {
		return err
	}
	appLogger.Debug("Maze session ended")
	return nil
}
