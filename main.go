package main

import (
	"flag"
	"fmt"
	"minimax/chess"
	"minimax/config"
	"minimax/engine"
	"minimax/experiments/metrics"
	"minimax/game"
	"minimax/player"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

func main() {
	configPath := flag.String("config", "", "engine configuration file (YAML)")
	opponent := flag.String("opponent", "random", "'random' or the configuration file of a second engine")
	metricsDir := flag.String("metrics", "", "directory for per-move search metrics")
	debug := flag.Bool("debug", false, "log every chosen move")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if err := run(*configPath, *opponent, *metricsDir); err != nil {
		log.Error().Err(err).Msg("game aborted")
		os.Exit(1)
	}
}

func run(configPath, opponent, metricsDir string) error {
	cfg, err := load(configPath)
	if err != nil {
		return err
	}
	setup, err := cfg.Build()
	if err != nil {
		return err
	}
	if setup.Sink != nil {
		defer func() {
			if err := setup.Sink.Close(); err != nil {
				log.Error().Err(err).Msg("failed to save observations")
			}
		}()
	}
	side := setup.Engine.Side()

	players := [2]player.Player{}
	players[side] = player.NewMinimax("minimax", setup.Engine)
	other, closeOther, err := createOpponent(opponent, side.Other(), cfg.Seed)
	if err != nil {
		return err
	}
	defer closeOther()
	players[side.Other()] = other

	e := engine.LocalEngine(chess.NewState(), players[game.First], players[game.Second])
	e.MaxMoves = cfg.MaxMoves
	e.ClaimDraw = cfg.ClaimDraw

	start := time.Now()
	outcome, err := e.Run()
	if err != nil {
		return err
	}
	report(outcome, players)

	if metricsDir != "" {
		return saveMetrics(metricsDir, outcome, players, start)
	}
	return nil
}

func saveMetrics(dir string, outcome engine.Outcome, players [2]player.Player, start time.Time) error {
	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return err
	}

	end := time.Now()
	record := metrics.GameRecord{
		First:     players[game.First].Name(),
		Second:    players[game.Second].Name(),
		Tie:       outcome.Tie,
		Stopped:   outcome.Stopped,
		Moves:     len(outcome.Moves),
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
	if outcome.Winner != nil {
		record.Winner = players[*outcome.Winner].Name()
	}
	if err := writer.WriteGameRecord(record); err != nil {
		return err
	}

	var moves []metrics.MoveRecord
	for _, p := range players {
		if m, ok := p.(*player.Minimax); ok {
			moves = append(moves, m.Records()...)
		}
	}
	slices.SortFunc(moves, func(a, b metrics.MoveRecord) int { return a.Ply - b.Ply })
	if err := writer.WriteMoveRecords(moves); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("metrics saved")
	return nil
}

func load(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// createOpponent builds the player of side. A second engine is read from its
// own configuration file and forced onto side.
func createOpponent(opponent string, side game.Side, seed uint64) (player.Player, func(), error) {
	if opponent == "random" {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return player.NewRandom(side, rand.New(rand.NewSource(seed))), func() {}, nil
	}

	cfg, err := config.Load(opponent)
	if err != nil {
		return nil, nil, err
	}
	cfg.Side = side.String()
	setup, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	closeSink := func() {}
	if setup.Sink != nil {
		closeSink = func() {
			if err := setup.Sink.Close(); err != nil {
				log.Error().Err(err).Msg("failed to save opponent observations")
			}
		}
	}
	return player.NewMinimax("opponent", setup.Engine), closeSink, nil
}

func report(outcome engine.Outcome, players [2]player.Player) {
	out := termenv.NewOutput(os.Stdout)

	if final, ok := outcome.Final.(*chess.State); ok {
		fmt.Println(final.Position().Board().Draw())
	}

	var result termenv.Style
	switch {
	case outcome.Stopped:
		result = out.String(fmt.Sprintf("Stopped after %d moves", len(outcome.Moves))).Foreground(out.Color("3"))
	case outcome.Tie:
		result = out.String("Draw").Foreground(out.Color("4"))
	case outcome.Winner != nil:
		result = out.String(fmt.Sprintf("%s wins", players[*outcome.Winner].Name())).Foreground(out.Color("2"))
	default:
		result = out.String("Game over").Foreground(out.Color("1"))
	}
	fmt.Printf("%s in %d plies\n", result.Bold(), len(outcome.Moves))
}
