package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account"
	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
	accountrepo "github.com/ovaphlow/pitchfork/service-account-go/internal/account/repo"
	"github.com/ovaphlow/pitchfork/service-account-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-account-go/pkg/utilities"
)

type options struct {
	email      string
	firstName  string
	lastName   string
	admin      bool
	noPassword bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("accountctl", flag.ContinueOnError)
	fs.StringVar(&o.email, "email", "", "account email (login identifier)")
	fs.StringVar(&o.firstName, "first-name", "", "first name")
	fs.StringVar(&o.lastName, "last-name", "", "last name")
	fs.BoolVar(&o.admin, "admin", false, "create a staff superuser")
	fs.BoolVar(&o.noPassword, "no-password", false, "create the account with an unusable password")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

// readPassword takes ACCOUNT_PASSWORD if set, otherwise prompts twice on a terminal.
func readPassword(in *os.File, out io.Writer) (string, error) {
	if pw := os.Getenv("ACCOUNT_PASSWORD"); pw != "" {
		return pw, nil
	}
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("ACCOUNT_PASSWORD is not set and stdin is not a terminal")
	}
	fmt.Fprint(out, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	fmt.Fprint(out, "Password (again): ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

func hasherFromEnv() account.BcryptHasher {
	cost, _ := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	return account.BcryptHasher{Cost: cost}
}

func main() {
	// best-effort: if no .env exists, continue with the real env
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	if err := run(opts, sugar); err != nil {
		sugar.Errorw(failureMessage(err), "email", opts.email, "err", err)
		_ = lg.Sync()
		os.Exit(1)
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, account.ErrMissingEmail):
		return "an email address is required"
	case errors.Is(err, account.ErrDuplicateEmail):
		return "an account with this email already exists"
	default:
		return "account creation failed"
	}
}

// createAccount picks the factory operation for opts. Regular accounts get a fresh confirmation code.
func createAccount(ctx context.Context, svc *account.Service, opts options, password string) (*entity.Account, error) {
	fields := account.Options{FirstName: opts.firstName, LastName: opts.lastName, Unusable: opts.noPassword}
	if opts.admin {
		return svc.CreateAdminAccount(ctx, opts.email, password, fields)
	}
	fields.ConfirmationCode = utilities.NewConfirmationCode()
	return svc.CreateAccount(ctx, opts.email, password, fields)
}

func run(opts options, sugar *zap.SugaredLogger) error {
	if strings.TrimSpace(opts.email) == "" {
		return account.ErrMissingEmail
	}
	password := ""
	if !opts.noPassword {
		pw, err := readPassword(os.Stdin, os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = pw
	}

	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := accountrepo.NewAccountRepo(db)
	if err := store.EnsureTable(ctx); err != nil {
		return err
	}
	svc := account.NewService(db, store, hasherFromEnv(), nil, sugar)

	a, err := createAccount(ctx, svc, opts, password)
	if err != nil {
		return err
	}
	fmt.Printf("created %s account %s (%s)\n", a.Privilege(), a.Email, a.ID)
	return nil
}
