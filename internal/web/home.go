package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(flash, nickname string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>MikiChats</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">MikiChats</span>
        <h1>Win the bot's heart.</h1>
        <p>Create a chatbot persona and race your friends to 100% affection.</p>
      </header>
`)
		if flash != "" {
			_, _ = io.WriteString(w, `      <div class="flash">`+escape(flash)+`</div>
`)
		}
		_, _ = io.WriteString(w, `
      <section class="panel">
        <div>
          <h2>Create a room</h2>
          <p>Describe the bot, set a scenario, and share the room code.</p>
        </div>
        <a href="/create" class="primary">Create room</a>
      </section>

      <section class="panel">
        <div>
          <h2>Join a room</h2>
          <p>Enter the room code from the host and pick a nickname.</p>
        </div>
        <form method="post" action="/join" class="join-form">
          <input name="room_code" placeholder="Room code" autocomplete="off" required/>
          <input name="nickname" placeholder="Nickname" value="`+escape(nickname)+`" autocomplete="nickname"/>
          <button type="submit" class="secondary">Join room</button>
        </form>
      </section>
    </main>
  </body>
</html>
`)
		return nil
	})
}
