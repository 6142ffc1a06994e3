package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func RoomView(page RoomPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Room `+escape(page.Code)+` - MikiChats</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell room">
      <header class="room-header">
        <img class="bot-avatar" src="`+escape(page.BotImageURL)+`" alt=""/>
        <div>
          <h1>`+escape(page.BotName)+`</h1>
          <p class="scenario">`+escape(page.StartScenario)+`</p>
          <p class="meta">Room code: <strong>`+escape(page.Code)+`</strong> &middot; Difficulty `+itoa(page.Difficulty)+`/10</p>
        </div>
      </header>

      <section class="scores">
`)
		for _, user := range page.Users {
			class := "score"
			if user.IsYou {
				class = "score you"
			}
			_, _ = io.WriteString(w, `        <div class="`+class+`"><span>`+escape(user.Nickname)+`</span><strong>`+itoa(user.Score)+`%</strong></div>
`)
		}
		_, _ = io.WriteString(w, `      </section>

      <section class="messages" id="messages">
`)
		for _, msg := range page.Messages {
			_, _ = io.WriteString(w, `        <div class="message `+escape(msg.Kind)+`"><span class="speaker">`+escape(msg.Speaker)+`</span><p>`+escape(msg.Text)+`</p></div>
`)
		}
		_, _ = io.WriteString(w, `      </section>
`)
		if page.GameOver {
			_, _ = io.WriteString(w, `
      <div class="game-over">This game has ended.</div>
`)
		} else {
			_, _ = io.WriteString(w, `
      <form id="chatForm" class="chat-form">
        <input name="message" placeholder="Say something..." autocomplete="off" required/>
        <button type="submit" class="primary">Send</button>
      </form>
      <div id="chatResult" class="result"></div>

      <script>
        const form = document.getElementById("chatForm");
        const chatResult = document.getElementById("chatResult");

        form.addEventListener("submit", async (event) => {
          event.preventDefault();
          const message = form.elements.message.value;
          if (!message) return;
          chatResult.textContent = "Thinking...";
          form.elements.message.value = "";
          const body = new URLSearchParams();
          body.append("message", message);
          const res = await fetch(window.location.pathname, { method: "POST", body });
          const data = await res.json();
          if (!data.success) {
            chatResult.textContent = data.error || "Something went wrong.";
          }
          window.location.reload();
        });
      </script>
`)
		}
		_, _ = io.WriteString(w, `    </main>
  </body>
</html>
`)
		return nil
	})
}
