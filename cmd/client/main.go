package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/Netflix/go-env"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"vitamed/auth"
	"vitamed/domain"
	"vitamed/infrastructure/http/client"
	"vitamed/repositories"
	"vitamed/services"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const (
	demoName     = "Dr. Sarah Johnson"
	demoEmail    = "sarah.johnson@example.com"
	demoPassword = "VitaMedDemo1!"
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Wire the conversation store, relay client and dispatcher.
	repository := repositories.NewConversationRepository(log)
	relay := client.NewRelayClient(log, config.RelayAddr, config.RequestTimeout)
	chat := services.NewChatService(log, repository, relay)

	issuer := auth.NewTokenIssuer([]byte(config.SessionKey), config.SessionTTL)
	identity := auth.NewMockIdentityProvider(log, issuer)
	if err := identity.Register(demoName, demoEmail, demoPassword); err != nil {
		return exitConfig, fmt.Errorf("seeding demo account: %w", err)
	}

	app := &application{
		repository: repository,
		chat:       chat,
		identity:   identity,
		out:        os.Stdout,
	}
	return app.loop(context.Background())
}

type application struct {
	repository *repositories.ConversationRepository
	chat       *services.ChatService
	identity   auth.IIdentityProvider

	// outMu serializes terminal writes: replies land on their own
	// goroutine while the input loop prints its prompt.
	outMu sync.Mutex
	out   io.Writer
}

// say runs one block of terminal output under the display lock, so a
// block is never interleaved with writes from another goroutine.
func (a *application) say(render func(w io.Writer)) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	render(a.out)
}

func (a *application) loop(ctx context.Context) (int, error) {
	a.say(func(w io.Writer) {
		fmt.Fprint(w, color.Bold.Sprint("VitaMed — medical information assistant\n"))
		fmt.Fprint(w, color.Gray.Sprintf("Sign in with /login (demo account: %s / %s). /help lists commands.\n", demoEmail, demoPassword))
	})

	scanner := bufio.NewScanner(os.Stdin)
	a.prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, "/"):
			quit := false
			a.say(func(w io.Writer) { quit = a.command(w, line) })
			if quit {
				return exitOK, nil
			}
		default:
			a.send(ctx, line)
		}
		a.prompt()
	}
	if err := scanner.Err(); err != nil {
		return exitRuntime, fmt.Errorf("reading input: %w", err)
	}
	return exitOK, nil
}

func (a *application) prompt() {
	a.say(a.promptTo)
}

func (a *application) promptTo(w io.Writer) {
	if active, ok := a.repository.Active(); ok {
		marker := ""
		if a.chat.Pending(active.ID) {
			marker = " …"
		}
		fmt.Fprint(w, color.Green.Sprintf("[%s%s] > ", active.Title, marker))
		return
	}
	fmt.Fprint(w, color.Green.Sprint("[new chat] > "))
}

// command handles a slash command and reports whether the loop should end.
func (a *application) command(w io.Writer, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true
	case "/help":
		a.help(w)
	case "/list":
		a.list(w)
	case "/new":
		a.repository.Select(nil)
	case "/open":
		a.open(w, fields[1:])
	case "/delete":
		a.delete(w, fields[1:])
	case "/login":
		a.login(w, fields[1:])
	case "/logout":
		a.identity.SignOut()
		fmt.Fprint(w, color.Gray.Sprint("Signed out.\n"))
	case "/whoami":
		if user, ok := a.identity.Current(); ok {
			fmt.Fprint(w, color.Gray.Sprintf("Signed in as %s <%s>\n", user.Name, user.Email))
		} else {
			fmt.Fprint(w, color.Gray.Sprint("Not signed in.\n"))
		}
	default:
		fmt.Fprint(w, color.Red.Sprintf("Unknown command %s\n", fields[0]))
	}
	return false
}

func (a *application) help(w io.Writer) {
	fmt.Fprintln(w, `Commands:
  /list            show conversations
  /new             start composing a new conversation
  /open <n>        switch to conversation n from /list
  /delete <n>      delete conversation n from /list
  /login [email] [password]   sign in (defaults to the demo account)
  /logout          sign out
  /whoami          show the signed-in user
  /quit            leave`)
}

func (a *application) list(w io.Writer) {
	listed := a.repository.List()
	if len(listed) == 0 {
		fmt.Fprint(w, color.Gray.Sprint("No conversations yet.\n"))
		return
	}

	active, hasActive := a.repository.Active()
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Title", "Messages", "Created", ""})
	for i, conversation := range listed {
		marker := ""
		if hasActive && conversation.ID == active.ID {
			marker = "active"
		}
		if a.chat.Pending(conversation.ID) {
			marker = strings.TrimSpace(marker + " pending")
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			conversation.Title,
			strconv.Itoa(len(conversation.Messages)),
			conversation.CreatedAt.Format("2006-01-02 15:04"),
			marker,
		})
	}
	table.Render()
}

func (a *application) open(w io.Writer, args []string) {
	conversation, ok := a.pick(w, args)
	if !ok {
		return
	}
	a.repository.Select(&conversation.ID)
	for _, message := range conversation.Messages {
		printMessage(w, message)
	}
}

func (a *application) delete(w io.Writer, args []string) {
	conversation, ok := a.pick(w, args)
	if !ok {
		return
	}
	a.repository.Delete(conversation.ID)
	fmt.Fprint(w, color.Gray.Sprintf("Deleted %q\n", conversation.Title))
}

// pick resolves the 1-based index printed by /list.
func (a *application) pick(w io.Writer, args []string) (domain.Conversation, bool) {
	if len(args) != 1 {
		fmt.Fprint(w, color.Red.Sprint("Expected a conversation number, see /list\n"))
		return domain.Conversation{}, false
	}
	n, err := strconv.Atoi(args[0])
	listed := a.repository.List()
	if err != nil || n < 1 || n > len(listed) {
		fmt.Fprint(w, color.Red.Sprint("No such conversation, see /list\n"))
		return domain.Conversation{}, false
	}
	return listed[n-1], true
}

func (a *application) login(w io.Writer, args []string) {
	email, password := demoEmail, demoPassword
	if len(args) == 2 {
		email, password = args[0], args[1]
	}
	user, _, err := a.identity.SignIn(email, password)
	if err != nil {
		fmt.Fprint(w, color.Red.Sprintf("Sign-in failed: %v\n", err))
		return
	}
	fmt.Fprint(w, color.Gray.Sprintf("Welcome, %s.\n", user.Name))
}

func (a *application) send(ctx context.Context, content string) {
	if _, ok := a.identity.Current(); !ok {
		a.say(func(w io.Writer) {
			fmt.Fprint(w, color.Red.Sprint("Please /login first.\n"))
		})
		return
	}

	// The dispatch runs on its own goroutine so the input loop stays
	// responsive; the user may switch or start conversations while the
	// turn is in flight.
	go func() {
		target := a.chat.SendUserTurn(ctx, content)
		if target != uuid.Nil {
			a.announceReply(target)
		}
	}()
}

// announceReply prints the landed reply and a fresh prompt as a single
// display block.
func (a *application) announceReply(target uuid.UUID) {
	conversation, ok := a.repository.Get(target)
	if !ok || len(conversation.Messages) == 0 {
		return
	}
	a.say(func(w io.Writer) {
		fmt.Fprintln(w)
		fmt.Fprint(w, color.Gray.Sprintf("— %s —\n", conversation.Title))
		printMessage(w, conversation.Messages[len(conversation.Messages)-1])
		a.promptTo(w)
	})
}

func printMessage(w io.Writer, message domain.Message) {
	switch message.Role {
	case domain.RoleUser:
		fmt.Fprint(w, color.Green.Sprintf("You: %s\n", message.Content))
	default:
		fmt.Fprint(w, color.Cyan.Sprintf("Vita Med: %s\n", message.Content))
	}
}
