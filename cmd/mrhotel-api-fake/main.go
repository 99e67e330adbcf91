/*
Copyright 2025 the MrHotel Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/mrhotel/api-tests/test/fake"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		listenAddress string
		options       fake.Options
	)

	pflag.StringVar(&listenAddress, "listen-address", ":5000", "Address to serve the fake hotel API on.")
	options.AddFlags(pflag.CommandLine)

	zapOptions := zap.Options{
		Development: true,
	}

	zapOptions.BindFlags(flag.CommandLine)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName("fake")

	ctx := cr.SetupSignalHandler()

	handler, err := fake.New(logger, fake.NewStore(nil), &options)
	if err != nil {
		logger.Error(err, "unable to create fake API")
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              listenAddress,
		Handler:           fake.NewRouter(logger, handler),
		ReadHeaderTimeout: time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "server shutdown failed")
		}
	}()

	logger.Info("serving fake hotel API", "address", listenAddress)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err, "server failed")
		os.Exit(1)
	}
}
