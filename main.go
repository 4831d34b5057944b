package main

import (
	"bytes"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ftl/linkbudget/core"
	"github.com/ftl/linkbudget/core/app"
	"github.com/ftl/linkbudget/core/budget"
	"github.com/ftl/linkbudget/core/cfg"
	"github.com/ftl/linkbudget/core/profile"
	"github.com/ftl/linkbudget/ui/report"
)

func main() {
	profileFile := flag.String("profile", "", "read the link from this YAML profile")
	targetName := flag.String("target", "", "the calculated quantity: snr, distance or txpower")
	rigHost := flag.String("rig", "", "follow the frequency of the rig at this rigctld address")
	follow := flag.Bool("follow", false, "keep calculating and print the report whenever it changes")
	metricsAddress := flag.String("metrics", "", "serve Prometheus metrics at this address in follow mode")
	saveFile := flag.String("save", "", "save the calculated link as YAML profile")
	flag.Parse()

	configuration, err := cfg.Load()
	if err != nil {
		log.Println(err)
		configuration = cfg.Static()
	}

	if *profileFile == "" {
		*profileFile = configuration.Profile
	}
	linkProfile := profile.New(configuration.Parameters, configuration.Target)
	if *profileFile != "" {
		err := linkProfile.ReadFile(*profileFile)
		if err != nil {
			log.Fatal(err)
		}
		configuration.Parameters, configuration.Target, err = linkProfile.Parameters()
		if err != nil {
			log.Fatal(err)
		}
	}
	if *targetName != "" {
		configuration.Target, err = core.ParseCalculationTarget(*targetName)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *rigHost != "" {
		configuration.RigHost = *rigHost
	}

	if *follow {
		runFollowMode(configuration, *metricsAddress)
		return
	}

	params, breakdown := budget.Solve(configuration.Parameters, configuration.Target)
	err = report.Write(os.Stdout, params, configuration.Target, breakdown)
	if err != nil {
		log.Fatal(err)
	}

	if *saveFile != "" {
		linkProfile.Update(params, configuration.Target)
		err := linkProfile.WriteFile(*saveFile)
		if err != nil {
			log.Fatal(err)
		}
	}
}

func runFollowMode(configuration core.Configuration, metricsAddress string) {
	if metricsAddress != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Print(http.ListenAndServe(metricsAddress, nil))
		}()
	}

	controller := app.New(configuration, prometheus.DefaultRegisterer)
	err := controller.Startup()
	if err != nil {
		log.Fatal(err)
	}
	defer controller.Shutdown()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var lastReport []byte
	for {
		select {
		case state := <-controller.State():
			buffer := new(bytes.Buffer)
			err := report.Write(buffer, state.Parameters, state.Target, state.Breakdown)
			if err != nil {
				log.Print(err)
				continue
			}
			if bytes.Equal(buffer.Bytes(), lastReport) {
				continue
			}
			lastReport = buffer.Bytes()
			os.Stdout.Write(lastReport)
			os.Stdout.WriteString("\n")
		case <-interrupt:
			return
		}
	}
}
