package render

const sectionTemplates = `
{{define "profile"}}<div class="profile">
  <img src="{{.Photo}}" alt="{{.Name}}" class="profile-photo" fetchpriority="high">
  <div class="profile-text">
    <h1>{{.Name}}</h1>
    {{- with .Title}}
    <div class="subtitle">{{.}}</div>{{end}}
    {{- with .Focus}}
    <div class="subtitle">{{.}}</div>{{end}}
    {{- if .Affiliation}}
    <div class="subtitle">{{range $i, $a := .Affiliation}}{{if $i}}<br>{{end}}{{$a}}{{end}}</div>{{end}}
    <div class="profile-links">
      {{- with .Email}}
      <a href="mailto:{{.}}" aria-label="Email">{{icon "Email"}}</a>{{end}}
      {{- range .Links}}
      <a href="{{.URL}}" target="_blank" rel="noopener noreferrer" aria-label="{{.Name}}">{{icon .Name}}</a>{{end}}
    </div>
  </div>
</div>{{end}}

{{define "about"}}<h2>About</h2>
{{range .}}<p>{{.}}</p>
{{end}}{{end}}

{{define "interests"}}<h2>Research Interests</h2>
<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}

{{define "experience"}}<h2>Research Experience</h2>
{{range .}}<div class="experience-block">
  <p>
    <strong>{{.Role}}</strong><br>
    {{.Institution}}<br>
    <em>{{.Period}}</em>
    {{- with .Supervisor}}<br>
    Supervisor: {{.}}{{end}}
  </p>
  <ul>{{range .Points}}
    <li>{{.}}</li>{{end}}
  </ul>
</div>
{{end}}{{end}}

{{define "publications"}}<h2>Publications</h2>
<div class="pub-controls">
  <div>
    {{- range .Filters}}
    <form method="post" action="/publications/filter/{{.Type}}" class="inline"><button type="submit" class="type-btn{{if .Active}} active{{end}}" data-type="{{.Type}}">{{.Label}}</button></form>
    {{- end}}
  </div>
  <div>
    Sort:
    <form method="post" action="/publications/sort" class="inline"><button type="submit" id="sort-toggle" data-sort="{{.Order}}">{{.SortLabel}}</button></form>
  </div>
</div>
{{range .Items}}<div class="pub">
  {{.Authors}}{{if .FirstAuthor}} <span class="first-author">★ First author</span>{{end}}
  <br>
  <em>{{.Title}}</em><br>
  {{.Journal}}, {{.Year}}
  <a href="{{.Link}}" target="_blank" rel="noopener noreferrer">[{{.Label}}]</a>
  {{- if .HasDetails}}
  <details class="pub-details">
    <summary class="pub-toggle">Show details</summary>
    {{- with .Summary}}
    <p><strong>Summary:</strong> {{.}}</p>{{end}}
    {{- with .Abstract}}
    <p><strong>Abstract:</strong> {{.}}</p>{{end}}
  </details>
  {{- end}}
</div>
{{else}}<p class="empty">No publications match this filter.</p>
{{end}}{{end}}
`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0 auto;
      max-width: 860px;
      padding: 0 1rem 4rem;
      color: #222;
      line-height: 1.5;
    }
    nav.nav-pills { position: sticky; top: 0; background: #fff; padding: 0.75rem 0; border-bottom: 1px solid #eee; }
    nav.nav-pills a { margin-right: 1rem; color: #555; text-decoration: none; }
    .profile { display: flex; gap: 1.5rem; align-items: center; margin-top: 2rem; }
    .profile-photo { width: 140px; height: 140px; border-radius: 50%; object-fit: cover; }
    .subtitle { color: #555; }
    .profile-links svg { width: 22px; height: 22px; fill: none; stroke: #444; stroke-width: 1.5; }
    .experience-block { margin-bottom: 1.5rem; }
    .exp-citation { color: #555; }
    .pub-controls { display: flex; justify-content: space-between; margin-bottom: 1rem; }
    form.inline { display: inline; }
    .type-btn.active { font-weight: bold; }
    .pub { margin-bottom: 1.25rem; }
    .first-author { color: #b8860b; margin-left: 0.5rem; font-size: 0.9em; }
    .pub-details summary { cursor: pointer; color: #336; }
  </style>
</head>
<body>
  <nav class="nav-pills">
    {{- range .Sections}}
    <a class="pill" href="#{{.ID}}">{{.Name}}</a>
    {{- end}}
  </nav>
  {{- range .Sections}}
  <section id="{{.ID}}">
{{.HTML}}
  </section>
  {{- end}}
  {{- range .Views}}
  <template id="view-{{.ID}}">{{.HTML}}</template>
  {{- end}}
  <script>
    (function () {
      var section = document.getElementById("publications");
      if (!section) return;
      var staticMode = {{.Static}};
      var state = {filter: {{.State.Filter}}, sort: {{.State.Order}}};

      function swap(html) { section.innerHTML = html; }
      function show() {
        var tpl = document.getElementById("view-" + state.filter + "-" + state.sort);
        if (tpl) swap(tpl.innerHTML);
      }
      function post(url) {
        fetch(url, {method: "POST", headers: {"X-Requested-With": "fetch"}, credentials: "same-origin"})
          .then(function (r) { return r.text(); })
          .then(swap);
      }

      section.addEventListener("submit", function (e) {
        e.preventDefault();
        var btn = e.target.querySelector("button");
        if (btn && btn.dataset.type) {
          state.filter = btn.dataset.type;
          if (staticMode) { show(); } else { post("/publications/filter/" + state.filter); }
          return;
        }
        state.sort = state.sort === "desc" ? "asc" : "desc";
        if (staticMode) { show(); } else { post("/publications/sort"); }
      });

      if (!staticMode && window.WebSocket) {
        var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
        ws.onmessage = function (e) {
          var msg = JSON.parse(e.data);
          if (msg.action === "reload") location.reload();
        };
      }
    })();
  </script>
</body>
</html>
`
