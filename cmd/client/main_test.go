package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"vitamed/domain"
	"vitamed/mocks"
	"vitamed/repositories"
	"vitamed/services"
)

func Test_Display_Blocks_Never_Interleave(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	a := &application{out: &buf}

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				block := i
				a.say(func(w io.Writer) {
					fmt.Fprintf(w, "writer-%d", n)
					fmt.Fprintf(w, " block-%d", block)
					fmt.Fprintln(w)
				})
			}
		}(n)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	req.Len(lines, 8*50)
	for _, line := range lines {
		req.Regexp(`^writer-\d block-\d+$`, line)
	}
}

func Test_Reply_Announcement_Is_One_Block(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := slog.Default()

	repository := repositories.NewConversationRepository(log)
	chat := services.NewChatService(log, repository, mocks.NewMockIRelayClient(ctrl))

	conversation := repository.Create(domain.NewUserMessage("What is aspirin?"))
	repository.Select(&conversation.ID)
	repository.Append(conversation.ID, domain.NewAssistantMessage("A common pain reliever."))

	var buf bytes.Buffer
	a := &application{repository: repository, chat: chat, out: &buf}
	a.announceReply(conversation.ID)

	out := buf.String()
	req.Contains(out, "— What is aspirin? —")
	req.Contains(out, "Vita Med: A common pain reliever.")
	req.Contains(out, "[What is aspirin?] > ")
	req.Less(strings.Index(out, "Vita Med:"), strings.Index(out, "] > "))
}
