package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/playmatatu/fairway/internal/autoplay"
	"github.com/playmatatu/fairway/internal/catalog"
	"github.com/playmatatu/fairway/internal/config"
	"github.com/playmatatu/fairway/internal/game"
	"github.com/playmatatu/fairway/internal/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	seed := flag.Int64("seed", 1, "weather seed")
	catalogPath := flag.String("catalog", cfg.CatalogPath, "course catalog YAML (embedded default when empty)")
	rounds := flag.Int("rounds", 1, "rounds to play back to back with one profile")
	verbose := flag.Bool("v", false, "log every shot")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.Init(level, true)
	entry := logger.WithComponent("playround")

	course, err := loadCourse(*catalogPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load course")
	}

	round, err := game.NewRoundController(course, game.RoundOptions{
		Physics:         cfg.Physics(),
		SpinEnabled:     cfg.SpinEnabled,
		AimAlongFairway: cfg.AimAlongFairway,
		Weather:         game.NewWeatherGenerator(*seed),
		Logger:          entry,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to start round")
	}

	player := autoplay.NewPlayer(round, autoplay.Caddie{
		Physics:         cfg.Physics(),
		AimAlongFairway: cfg.AimAlongFairway,
	}, entry)

	for i := 1; i <= *rounds; i++ {
		result, err := player.PlayRound()
		if err != nil {
			log.WithError(err).Fatal("Round did not finish")
		}
		profile := round.Snapshot().Profile
		entry.WithFields(logrus.Fields{
			"round":  i,
			"total":  result.Total,
			"par":    result.Par,
			"level":  profile.Level,
			"points": profile.SkillPoints,
		}).Info("Round complete")
		printScorecard(course, result)

		// spend points between rounds the way a player would, cheapest first
		for _, view := range round.Skills() {
			if view.Available {
				if _, err := round.PurchaseSkill(view.ID); err == nil {
					entry.WithField("skill", view.ID).Info("Skill purchased")
				}
			}
		}
		round.DrainEvents()
	}
}

func loadCourse(path string) (*game.Course, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func printScorecard(course *game.Course, result game.RoundResult) {
	var holes, pars, scores []string
	for i, h := range course.Holes {
		holes = append(holes, fmt.Sprintf("%3d", h.ID))
		pars = append(pars, fmt.Sprintf("%3d", h.Par))
		scores = append(scores, fmt.Sprintf("%3d", result.Scorecard[i]))
	}
	fmt.Fprintf(os.Stdout, "hole  %s\npar   %s  %d\nscore %s  %d (%+d)\n",
		strings.Join(holes, ""),
		strings.Join(pars, ""), result.Par,
		strings.Join(scores, ""), result.Total, result.Total-result.Par)
}
