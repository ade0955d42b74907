package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"
	"github.com/solwave/fanwall/middleware"
	"github.com/solwave/fanwall/pay"
	"github.com/solwave/fanwall/store"
	"github.com/solwave/fanwall/util"
	"github.com/solwave/fanwall/web"
	gossh "golang.org/x/crypto/ssh"
)

func main() {
	versionFlag := flag.Bool("v", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s v%s\n", util.Name, util.GetVersion())
		os.Exit(0)
	}

	conf, err := util.ReadConf()
	if err != nil {
		log.Fatalf("Could not read config: %v", err)
	}

	util.SetupLogging(conf)

	if err := store.Init(conf); err != nil {
		log.Fatalf("Could not initialize store: %v", err)
	}
	defer func() {
		if err := store.Get().Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	pay.Init(conf.Conf.RpcUrl)

	sshAddr := fmt.Sprintf("%s:%d", conf.Conf.Host, conf.Conf.SshPort)
	s, err := wish.NewServer(
		wish.WithAddress(sshAddr),
		wish.WithHostKeyPath(".ssh/fanwall_ed25519"),
		// Any key is accepted; the key material itself is the identity
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		}),
		// Key-less sessions browse read-only
		wish.WithKeyboardInteractiveAuth(func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		}),
		wish.WithMiddleware(
			middleware.MainTui(conf),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("Could not create ssh server: %v", err)
	}

	if !conf.Conf.SshOnly {
		go func() {
			if err := web.RunWebServer(conf); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP server stopped: %v", err)
			}
		}()
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting %s SSH server on %s", util.GetNameAndVersion(), sshAddr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Printf("SSH server stopped: %v", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	log.Println("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Printf("Could not stop server gracefully: %v", err)
	}
}
