package site

// pageTemplate renders the whole single-page site. Every section is emitted;
// only the one the router activated carries the "active" class.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.PageTitle}} | {{.Title}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body data-current="{{.Current}}">
  <nav class="navbar">
    <a class="brand" href="/">{{.Author}}</a>
    <ul class="nav-links">
      {{range .Links}}<li><a class="nav-link{{if .Active}} active{{end}}" href="/{{.ID}}" data-section="{{.ID}}">{{.Title}}</a></li>
      {{end}}
    </ul>
  </nav>
  <main>
    {{range .Sections}}
    <section id="{{.ID}}" class="section{{if .Active}} active{{end}}">
      <div class="container">
        {{.HTML}}
        {{if eq .ID "home"}}{{template "featured" $}}{{template "previews" $}}{{end}}
        {{if eq .ID "projects"}}{{template "projects" $}}{{end}}
        {{if eq .ID "contact"}}{{template "contact" $}}{{end}}
      </div>
    </section>
    {{end}}
  </main>
  <footer class="footer">
    <p>&copy; {{.Year}} {{.Author}}. {{.Tagline}}</p>
  </footer>
  <script src="/static/nav.js"></script>
</body>
</html>

{{define "featured"}}{{if .Featured}}
<div class="featured-projects">
  <h2>Featured Projects</h2>
  <div class="projects-grid">
    {{range .Featured}}
    <article class="project-card featured" data-project="{{.ID}}">
      <h3>{{.Title}}</h3>
      <div class="project-description">{{.DescriptionHTML}}</div>
      <ul class="tech-list">{{range .TechList}}<li>{{.}}</li>{{end}}</ul>
    </article>
    {{end}}
  </div>
  <a class="more-link" href="/projects" data-section="projects">All projects</a>
</div>
{{end}}{{end}}

{{define "previews"}}{{if .Files}}
<div class="project-structure">
  <ul class="file-list">
    {{range .Files}}<li class="file-item{{if .Active}} active{{end}}"><a href="?file={{.Path}}" data-file="{{.Path}}">{{.Path}}</a></li>
    {{end}}
  </ul>
</div>
{{end}}{{if .Tabs}}
<div class="code-preview">
  <div class="tab-buttons">
    {{range .Tabs}}<a class="tab-btn{{if .Active}} active{{end}}" href="?tab={{.Name}}" data-tab="{{.Name}}">{{.Filename}}</a>
    {{end}}
  </div>
  {{range .Tabs}}<div id="{{.Name}}-tab" class="tab-content{{if .Preview}} active{{end}}" data-language="{{.Language}}">{{.HTML}}</div>
  {{end}}
</div>
{{end}}{{end}}

{{define "projects"}}
<div class="projects-grid">
  {{range .Projects}}
  <article class="project-card{{if .Featured}} featured{{end}}">
    <h3>{{.Title}}</h3>
    <div class="project-description">{{.DescriptionHTML}}</div>
    <ul class="tech-list">{{range .TechList}}<li>{{.}}</li>{{end}}</ul>
    <div class="project-links">
      {{if .GitHubURL}}<a href="{{.GitHubURL}}" rel="noopener">Code</a>{{end}}
      {{if .LiveURL}}<a href="{{.LiveURL}}" rel="noopener">Live</a>{{end}}
    </div>
  </article>
  {{else}}
  <p class="empty">No projects published yet.</p>
  {{end}}
</div>
{{end}}

{{define "contact"}}
{{if .Sent}}<div class="flash success">Message sent successfully</div>{{end}}
{{if .FormError}}<div class="flash error">{{.FormError}}</div>{{end}}
<form class="contact-form" method="post" action="/contact">
  <label>Name <input type="text" name="name" value="{{.Form.Name}}" required></label>
  {{with index .Errors "name"}}<span class="field-error">{{.}}</span>{{end}}
  <label>Email <input type="email" name="email" value="{{.Form.Email}}" required></label>
  {{with index .Errors "email"}}<span class="field-error">{{.}}</span>{{end}}
  <label>Subject <input type="text" name="subject" value="{{.Form.Subject}}" required></label>
  {{with index .Errors "subject"}}<span class="field-error">{{.}}</span>{{end}}
  <label>Message <textarea name="message" rows="6" required>{{.Form.Message}}</textarea></label>
  {{with index .Errors "message"}}<span class="field-error">{{.}}</span>{{end}}
  <label class="checkbox"><input type="checkbox" name="newsletter" value="1"{{if .Form.Newsletter}} checked{{end}}> Subscribe to the newsletter</label>
  <button type="submit">Send Message</button>
</form>
{{end}}`

const notFoundTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Page not found | {{.Title}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <main class="not-found">
    <h1>404</h1>
    <p>There is no section called <code>{{.Path}}</code>.</p>
    <a href="/">Back to {{.Title}}</a>
  </main>
</body>
</html>`

const cssContent = `:root {
  --bg: #0f172a;
  --bg-card: #1e293b;
  --text: #e2e8f0;
  --muted: #94a3b8;
  --accent: #38bdf8;
  --error: #f87171;
  --success: #4ade80;
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: system-ui, sans-serif; background: var(--bg); color: var(--text); line-height: 1.6; }
a { color: var(--accent); text-decoration: none; }
.navbar { position: sticky; top: 0; display: flex; justify-content: space-between; align-items: center; padding: 1rem 2rem; background: var(--bg-card); z-index: 10; }
.nav-links { display: flex; gap: 1.5rem; list-style: none; }
.nav-link { color: var(--muted); }
.nav-link.active { color: var(--accent); border-bottom: 2px solid var(--accent); }
.section { display: none; min-height: calc(100vh - 8rem); padding: 4rem 2rem; }
.section.active { display: block; }
.container { max-width: 960px; margin: 0 auto; }
.code-preview { margin-top: 2rem; background: var(--bg-card); border-radius: 8px; overflow: hidden; }
.tab-buttons { display: flex; border-bottom: 1px solid #334155; }
.tab-btn { padding: .5rem 1rem; color: var(--muted); }
.tab-btn.active { color: var(--text); background: #334155; }
.tab-content { display: none; padding: 1rem; overflow-x: auto; }
.tab-content.active { display: block; }
.project-structure { margin-top: 2rem; background: var(--bg-card); border-radius: 8px; padding: 1rem; }
.file-list { list-style: none; font-family: ui-monospace, monospace; font-size: .9rem; }
.file-item a { display: block; padding: .2rem .5rem; color: var(--muted); border-radius: 4px; }
.file-item.active a { color: var(--text); background: #334155; }
.featured-projects { margin-top: 2rem; }
.more-link { display: inline-block; margin-top: 1rem; }
.projects-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 1.5rem; margin-top: 2rem; }
.project-card { background: var(--bg-card); padding: 1.5rem; border-radius: 8px; }
.project-card.featured { border: 1px solid var(--accent); }
.tech-list { display: flex; flex-wrap: wrap; gap: .5rem; list-style: none; margin: 1rem 0; }
.tech-list li { font-size: .8rem; padding: .1rem .5rem; border-radius: 4px; background: #334155; }
.contact-form { display: grid; gap: .75rem; max-width: 560px; margin-top: 2rem; }
.contact-form input, .contact-form textarea { width: 100%; padding: .5rem; background: var(--bg-card); color: var(--text); border: 1px solid #334155; border-radius: 4px; }
.contact-form button { padding: .75rem; background: var(--accent); color: var(--bg); border: 0; border-radius: 4px; cursor: pointer; }
.field-error { color: var(--error); font-size: .85rem; }
.flash { padding: .75rem 1rem; border-radius: 4px; margin-top: 1rem; }
.flash.success { background: rgba(74, 222, 128, .15); color: var(--success); }
.flash.error { background: rgba(248, 113, 113, .15); color: var(--error); }
.footer { text-align: center; padding: 2rem; color: var(--muted); }
.not-found { text-align: center; padding: 6rem 2rem; }
`

// jsContent keeps the page in sync with the navigation session. All routing
// decisions are made server side; the script only applies the state it is
// sent and forwards clicks, back/forward, tab and file selections.
const jsContent = `(function() {
  var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  var ws;
  try {
    ws = new WebSocket(proto + '//' + location.host + '/ws/nav');
  } catch (e) {
    return;
  }

  function send(msg) {
    if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  function applyState(msg) {
    var active = {};
    (msg.active || []).forEach(function(id) { active[id] = true; });
    document.querySelectorAll('section.section').forEach(function(s) {
      s.classList.toggle('active', !!active[s.id]);
    });
    document.querySelectorAll('a.nav-link[data-section]').forEach(function(a) {
      a.classList.toggle('active', !!active[a.dataset.section]);
    });
    document.body.dataset.current = msg.current;
    if (msg.push) history.pushState(null, '', '#' + msg.push);
    if (msg.scroll_top) window.scrollTo({ top: 0, behavior: 'smooth' });
  }

  function applyFile(msg) {
    document.querySelectorAll('.file-item').forEach(function(li) {
      var a = li.querySelector('a[data-file]');
      li.classList.toggle('active', !!a && a.dataset.file === msg.selected);
    });
  }

  function applyTab(msg) {
    document.querySelectorAll('.tab-btn[data-tab]').forEach(function(b) {
      b.classList.toggle('active', b.dataset.tab === msg.selected);
    });
    document.querySelectorAll('.tab-content').forEach(function(c) {
      c.classList.toggle('active', msg.preview && c.id === msg.selected + '-tab');
    });
  }

  ws.onopen = function() {
    var fragment = location.hash;
    if (!fragment && location.pathname.length > 1) fragment = '#' + location.pathname.slice(1);
    send({ type: 'init', fragment: fragment });
  };

  ws.onmessage = function(ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === 'state') applyState(msg);
    else if (msg.type === 'tab') applyTab(msg);
    else if (msg.type === 'file') applyFile(msg);
  };

  document.addEventListener('click', function(ev) {
    if (ws.readyState !== WebSocket.OPEN) return;
    var link = ev.target.closest('a[data-section]');
    if (link) {
      ev.preventDefault();
      send({ type: 'navigate', section: link.dataset.section });
      return;
    }
    var tab = ev.target.closest('.tab-btn[data-tab]');
    if (tab) {
      ev.preventDefault();
      send({ type: 'tab', tab: tab.dataset.tab });
      return;
    }
    var file = ev.target.closest('a[data-file]');
    if (file) {
      ev.preventDefault();
      send({ type: 'file', file: file.dataset.file });
    }
  });

  window.addEventListener('popstate', function() {
    send({ type: 'popstate', fragment: location.hash });
  });
})();
`
