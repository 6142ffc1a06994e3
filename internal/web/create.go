package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func CreateView(nickname string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Create a room - MikiChats</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">MikiChats</span>
        <h1>Create a room</h1>
      </header>

      <form method="post" action="/create" class="panel create-form">
        <label>Your nickname
          <input name="nickname" value="`+escape(nickname)+`" placeholder="Host"/>
        </label>
        <label>Bot name
          <input name="bot_name" placeholder="Luna" required/>
        </label>
        <label>Bot personality
          <textarea name="bot_personality" placeholder="Shy but warm, loves astronomy"></textarea>
        </label>
        <label>Bot appearance
          <textarea name="appearance" placeholder="Silver hair, green eyes"></textarea>
        </label>
        <label>Opening scenario
          <textarea name="start_scenario" placeholder="You meet at a park."></textarea>
        </label>
        <label>Difficulty (0-10)
          <input name="difficulty" type="number" min="0" max="10" value="5"/>
        </label>

        <fieldset class="avatar">
          <legend>Bot avatar</legend>
          <input type="hidden" name="bot_image_url" id="botImageUrl"/>
          <img id="avatarPreview" alt="" hidden/>
          <div class="avatar-actions">
            <label>Gender <input id="avatarGender" placeholder="person"/></label>
            <label>Age <input id="avatarAge" placeholder="20"/></label>
            <button type="button" id="generateAvatar" class="secondary">Generate with AI</button>
            <input type="file" id="avatarFile" accept="image/*"/>
          </div>
          <div id="avatarResult" class="result"></div>
        </fieldset>

        <button type="submit" class="primary">Create room</button>
      </form>
    </main>

    <script>
      const result = document.getElementById("avatarResult");
      const urlField = document.getElementById("botImageUrl");
      const preview = document.getElementById("avatarPreview");

      function setAvatar(url) {
        urlField.value = url;
        preview.src = url;
        preview.hidden = false;
        result.textContent = "Avatar ready.";
      }

      document.getElementById("generateAvatar").addEventListener("click", async () => {
        result.textContent = "Generating avatar...";
        const res = await fetch("/generate-bot-image", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            gender: document.getElementById("avatarGender").value,
            age: document.getElementById("avatarAge").value,
            appearance: document.querySelector("[name=appearance]").value
          })
        });
        const data = await res.json();
        if (!data.success) {
          result.textContent = data.error || "Failed to generate avatar.";
          return;
        }
        setAvatar(data.image_url);
      });

      document.getElementById("avatarFile").addEventListener("change", async (event) => {
        const file = event.target.files[0];
        if (!file) return;
        result.textContent = "Uploading avatar...";
        const form = new FormData();
        form.append("file", file);
        const res = await fetch("/upload-bot-image", { method: "POST", body: form });
        const data = await res.json();
        if (!data.success) {
          result.textContent = data.error || "Failed to upload avatar.";
          return;
        }
        setAvatar(data.image_url);
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}
