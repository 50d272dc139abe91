package main

import (
	"context"
	"os"
	"os/signal"
	"slices"

	"github.com/sirupsen/logrus"

	"oc-setup-task/pkg/api"
	"oc-setup-task/pkg/clients"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		SortingFunc: func(s []string) {
			l := len(s)
			if l < 1 {
				return
			}

			i := slices.Index(s, "m")
			if i < 0 {
				return
			}

			s[l-1], s[i] = s[i], s[l-1]
		},
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "t",
			logrus.FieldKeyLevel: "l",
			logrus.FieldKeyMsg:   "m",
		},
		DisableQuote: true,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	oc := clients.NewOc()
	if err := oc.Setup(ctx); err != nil {
		logrus.Fatal("oc setup failed: ", err)
	}

	rawLine := api.GetValueFor(api.OcArgs)
	if rawLine == "" {
		return
	}

	cmd, err := oc.CommandLine(ctx, rawLine)
	if err != nil {
		logrus.Fatal("cannot parse oc arguments: ", err)
	}
	if err := cmd.Run(); err != nil {
		logrus.Fatal("oc failed: ", err)
	}
}
