package site

// pageTemplate is the Go html/template for each research page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  {{with .Description}}<meta name="description" content="{{.}}">{{end}}
  <link rel="stylesheet" href="{{.Base}}/style.css">
</head>
<body data-section="{{.Section}}" data-page="{{.PageID}}" data-base="{{.Base}}"
      data-live="{{if .Live}}1{{end}}" data-max-results="{{.MaxResults}}" data-highlight-tag="{{.HighlightTag}}"
      data-initial-delay="{{.Scroll.InitialMS}}" data-navigate-delay="{{.Scroll.NavigateMS}}"
      data-retry-interval="{{.Scroll.RetryMS}}" data-max-retries="{{.Scroll.MaxRetries}}"
      data-header-offset="{{.Scroll.HeaderOffset}}" data-narrow-width="{{.NarrowPx}}">
  <header class="navbar">
    <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">&#9776;</button>
    <a class="brand" href="{{.Base}}/">{{if .Logo}}<img src="{{.Base}}/{{.Logo}}" alt="" class="logo">{{end}}{{.SiteTitle}}</a>
    <a class="section-link" href="{{.Base}}/{{.Section}}">{{.SectionTitle}}</a>
  </header>
  <nav class="sidebar{{if .SidebarOpen}} open{{end}}" id="sidebar">
    <div class="search-box">
      <input type="search" id="search-input" name="q" value="{{.Query}}" placeholder="Search docs... (press /)" autocomplete="off">
      <div class="search-results{{if .Query}} visible{{end}}" id="search-results">
        {{- if .Query}}
        {{- range .Results}}
        <a class="search-result" href="{{.Href}}">
          <span class="result-title">{{.Title}}</span>
          {{with .PageTitle}}<span class="result-page">{{.}}</span>{{end}}
          <span class="result-snippet">{{.Snippet}}</span>
        </a>
        {{- else}}
        <div class="search-empty">No results for "{{.Query}}"</div>
        {{- end}}
        {{- end}}
      </div>
    </div>
    <ul class="sidebar-tree">
      {{- range .Tree}}
      <li class="item{{if .Expandable}} parent{{end}}{{if .Expanded}} expanded{{end}}" data-id="{{.ID}}">
        <div class="row{{if .Active}} active{{end}}">
          <a href="{{.Href}}" class="item-link"><span class="icon icon-{{.Icon}}"></span>{{.Title}}</a>
          {{if .Expandable}}<button class="toggle" data-toggle="{{.ID}}" aria-label="Expand {{.Title}}">&#9656;</button>{{end}}
        </div>
        {{- if .Children}}
        <ul class="children">
          {{- range .Children}}
          <li class="child" data-id="{{.ID}}"><a href="{{.Href}}" class="row{{if .Active}} active{{end}}">{{.Title}}</a></li>
          {{- end}}
        </ul>
        {{- end}}
      </li>
      {{- end}}
    </ul>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content">
    {{- with .Breadcrumb}}
    <div class="breadcrumb"><a href="{{$.BreadcrumbHref}}">{{.ParentTitle}}</a> <span>/</span> <span>{{.CurrentTitle}}</span></div>
    {{- end}}
    <h1 class="page-title">{{.Title}}</h1>
    {{with .Category}}<div class="category">{{.}}</div>{{end}}
    <article class="page-content markdown-content">
      {{.Body}}
    </article>
  </main>
  {{- if .TOC}}
  <button class="toc-toggle" id="toc-toggle" aria-label="Table of contents">&#9776; Contents</button>
  <aside class="floating-toc" id="floating-toc">
    <h3>On this page</h3>
    <ul>
      {{- range .TOC}}
      <li><a href="{{.Href}}">{{.Title}}</a></li>
      {{- end}}
    </ul>
  </aside>
  {{- end}}
  <script src="{{.Base}}/script.js"></script>
</body>
</html>`

// landingTemplate links to the research sections.
const landingTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.Base}}/style.css">
</head>
<body class="landing">
  <header class="navbar">
    <a class="brand" href="{{.Base}}/">{{if .Logo}}<img src="{{.Base}}/{{.Logo}}" alt="" class="logo">{{end}}{{.SiteTitle}}</a>
  </header>
  <main class="landing-main">
    <h1>{{.SiteTitle}}</h1>
    <p class="tagline">Security research on smart contract patterns and cryptographic protocols.</p>
    <div class="cards">
      {{- range .Sections}}
      <a class="card" href="{{$.Base}}/{{.Name}}">
        <h2>{{.Title}}</h2>
        <p>{{.Summary}}</p>
        <span class="count">{{.Pages}} pages</span>
      </a>
      {{- end}}
    </div>
  </main>
</body>
</html>`

// cssContent is the stylesheet shared by every page.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-sidebar: #f9fafb;
  --text: #111827;
  --text-muted: #6b7280;
  --border: #e5e7eb;
  --accent: #15803d;
  --accent-light: #dcfce7;
  --code-bg: #f3f4f6;
  --header-height: 4rem;
  --sidebar-width: 18rem;
}

*, *::before, *::after { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
}

a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }

.navbar {
  position: sticky;
  top: 0;
  z-index: 50;
  display: flex;
  align-items: center;
  gap: 1.5rem;
  height: var(--header-height);
  padding: 0 1.5rem;
  background: var(--bg);
  border-bottom: 1px solid var(--border);
}

.brand { font-weight: 700; color: var(--text); display: flex; align-items: center; gap: .5rem; }
.logo { height: 2rem; }
.menu-toggle { display: none; background: none; border: 0; font-size: 1.5rem; cursor: pointer; }

.sidebar {
  position: fixed;
  top: var(--header-height);
  left: 0;
  bottom: 0;
  width: var(--sidebar-width);
  overflow-y: auto;
  padding: 1rem;
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
}

.search-box { position: relative; margin-bottom: 1rem; }
#search-input {
  width: 100%;
  padding: .6rem .8rem;
  border: 1px solid var(--border);
  border-radius: .5rem;
  font-size: .95rem;
}
#search-input:focus { outline: 2px solid var(--accent); border-color: transparent; }

.search-results {
  display: none;
  position: absolute;
  top: 100%;
  left: 0;
  right: 0;
  z-index: 60;
  max-height: 24rem;
  overflow-y: auto;
  margin-top: .5rem;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: .5rem;
  box-shadow: 0 10px 25px rgba(0,0,0,.1);
}
.search-results.visible { display: block; }
.search-result { display: block; padding: .75rem 1rem; border-bottom: 1px solid var(--border); color: var(--text); }
.search-result:last-child { border-bottom: 0; }
.search-result:hover { background: var(--bg-sidebar); text-decoration: none; }
.result-title { display: block; font-weight: 600; }
.result-page { display: block; font-size: .8rem; color: var(--text-muted); }
.result-snippet { display: block; font-size: .85rem; color: var(--text-muted); }
.search-empty { padding: 1rem; text-align: center; color: var(--text-muted); }
mark { background: #fef08a; color: inherit; padding: 0 .1em; }

.sidebar-tree, .sidebar-tree ul { list-style: none; margin: 0; padding: 0; }
.sidebar-tree .row {
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: .4rem .6rem;
  border-radius: .4rem;
  color: var(--text);
}
.sidebar-tree .row:hover { background: #f3f4f6; }
.sidebar-tree .row.active { background: var(--accent-light); color: var(--accent); }
.item-link { color: inherit; flex: 1; }
.toggle { background: none; border: 0; cursor: pointer; transition: transform .15s; }
.item.expanded > .row .toggle { transform: rotate(90deg); }
.children { display: none; margin-left: 1.25rem !important; }
.item.expanded > .children { display: block; }
.child .row { font-size: .92rem; }

.content {
  margin-left: var(--sidebar-width);
  max-width: 56rem;
  padding: 2rem 3rem 4rem;
}
.breadcrumb { font-size: .9rem; color: var(--text-muted); margin-bottom: .5rem; }
.category { font-size: .8rem; text-transform: uppercase; color: var(--text-muted); margin-bottom: 1.5rem; }

.markdown-content h2 { margin-top: 2.5rem; padding-bottom: .3rem; border-bottom: 1px solid var(--border); }
.markdown-content pre { padding: 1rem; overflow-x: auto; background: var(--code-bg); border-radius: .5rem; }
.markdown-content code { font-size: .9em; }
.table-wrapper { overflow-x: auto; margin: 1.5rem 0; }
.table-wrapper table { border-collapse: collapse; min-width: 100%; }
.table-wrapper th, .table-wrapper td { border: 1px solid var(--border); padding: .5rem .75rem; text-align: left; }
.jekyll-toc { padding: 1rem 1.5rem; background: var(--bg-sidebar); border: 1px solid var(--border); border-radius: .5rem; }
.jekyll-toc h2 { margin-top: 0; border: 0; font-size: 1.1rem; }
.coming-soon { padding: 1.5rem; background: #f0fdf4; border: 1px solid #bbf7d0; border-radius: .5rem; }

.toc-toggle {
  position: fixed;
  right: 2rem;
  top: calc(var(--header-height) + 1rem);
  z-index: 30;
  padding: .4rem .8rem;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: .4rem;
  cursor: pointer;
}
.floating-toc {
  display: none;
  position: fixed;
  right: 2rem;
  top: calc(var(--header-height) + 3.5rem);
  bottom: 1rem;
  width: 16rem;
  overflow-y: auto;
  z-index: 30;
  padding: 1rem;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: .5rem;
  box-shadow: 0 10px 25px rgba(0,0,0,.1);
}
.floating-toc.open { display: block; }
.floating-toc ul { list-style: none; padding: 0; margin: 0; }
.floating-toc li { margin: .3rem 0; font-size: .9rem; }

.sidebar-overlay { display: none; }

.landing-main { max-width: 60rem; margin: 0 auto; padding: 4rem 1.5rem; text-align: center; }
.tagline { color: var(--text-muted); font-size: 1.1rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(16rem, 1fr)); gap: 1.5rem; margin-top: 3rem; }
.card { display: block; padding: 2rem; border: 1px solid var(--border); border-radius: .75rem; color: var(--text); text-align: left; }
.card:hover { border-color: var(--accent); text-decoration: none; }
.count { font-size: .85rem; color: var(--text-muted); }

@media (max-width: 768px) {
  .menu-toggle { display: block; }
  .sidebar { transform: translateX(-100%); transition: transform .3s; z-index: 40; }
  .sidebar.open { transform: translateX(0); }
  .sidebar.open + .sidebar-overlay { display: block; position: fixed; inset: 0; background: rgba(0,0,0,.3); z-index: 35; }
  .content { margin-left: 0; padding: 1.5rem; }
}
`

// jsContent drives search, the sidebar, keyboard shortcuts and hash-anchor
// scrolling in the browser. The scroller mirrors internal/anchor.
const jsContent = `(function() {
  "use strict";

  var body = document.body;
  var data = body.dataset;
  var base = data.base || "";
  var section = data.section || "";
  var live = data.live === "1";
  var maxResults = parseInt(data.maxResults || "10", 10);
  var tag = data.highlightTag || "mark";
  var narrowWidth = parseInt(data.narrowWidth || "768", 10);

  function isNarrow() { return window.innerWidth < narrowWidth; }

  function escapeRegExp(s) { return s.replace(/[.*+?^${}()|[\]\\]/g, "\\$&"); }

  function escapeHTML(s) {
    return s.replace(/&/g, "&amp;").replace(/</g, "&lt;").replace(/>/g, "&gt;").replace(/"/g, "&quot;");
  }

  var decoder = document.createElement("textarea");
  function plainText(s) {
    decoder.innerHTML = s;
    return decoder.value;
  }

  // Escapes text and wraps every match of query in the highlight tag.
  function highlight(text, query) {
    if (!query) return escapeHTML(text);
    var re = new RegExp(escapeRegExp(query), "gi");
    var out = "", last = 0, m;
    while ((m = re.exec(text)) !== null) {
      out += escapeHTML(text.slice(last, m.index)) +
        "<" + tag + ">" + escapeHTML(m[0]) + "</" + tag + ">";
      last = m.index + m[0].length;
    }
    return out + escapeHTML(text.slice(last));
  }

  function excerpt(text, query) {
    var i = Math.max(text.toLowerCase().indexOf(query.toLowerCase()), 0);
    var start = Math.max(i - 80, 0);
    var end = Math.min(i + query.length + 80, text.length);
    return (start > 0 ? "..." : "") + text.slice(start, end).trim() + (end < text.length ? "..." : "");
  }

  // ===== Sidebar =====
  var sidebar = document.getElementById("sidebar");
  var overlay = document.getElementById("sidebar-overlay");
  var menuToggle = document.getElementById("menu-toggle");

  function closeSidebar() { if (sidebar) sidebar.classList.remove("open"); }
  function toggleSidebar() { if (sidebar) sidebar.classList.toggle("open"); }

  if (menuToggle) menuToggle.addEventListener("click", toggleSidebar);
  if (overlay) overlay.addEventListener("click", closeSidebar);

  document.querySelectorAll(".toggle[data-toggle]").forEach(function(btn) {
    btn.addEventListener("click", function(e) {
      // Expanding never selects the row underneath.
      e.preventDefault();
      e.stopPropagation();
      var item = btn.closest(".item");
      if (item) item.classList.toggle("expanded");
    });
  });

  document.querySelectorAll(".sidebar-tree a").forEach(function(link) {
    link.addEventListener("click", function() { if (isNarrow()) closeSidebar(); });
  });

  // ===== Floating table of contents =====
  var tocToggle = document.getElementById("toc-toggle");
  var toc = document.getElementById("floating-toc");
  function closeTOC() { if (toc) toc.classList.remove("open"); }
  if (tocToggle && toc) {
    tocToggle.addEventListener("click", function() { toc.classList.toggle("open"); });
    toc.querySelectorAll("a").forEach(function(a) { a.addEventListener("click", closeTOC); });
  }

  // ===== Search =====
  var input = document.getElementById("search-input");
  var resultsBox = document.getElementById("search-results");
  var index = null;
  var socket = null;
  var seq = 0;

  var sectionNames = ["proxies", "mpc"];

  function underSection(path, name) {
    var prefix = "/" + name;
    if (path === prefix) return true;
    var c = path.charAt(prefix.length);
    return path.indexOf(prefix) === 0 && (c === "/" || c === "#");
  }

  // Section of an index entry, or "" when its path names none.
  function entrySection(r) {
    for (var i = 0; i < sectionNames.length; i++) {
      if (underSection(r.path || "", sectionNames[i])) return sectionNames[i];
    }
    return "";
  }

  function resultHref(r) {
    if (entrySection(r)) return base + r.path;
    return pagePath(r.id.split("-section-")[0]);
  }

  function renderResults(query, results) {
    if (!resultsBox) return;
    if (!query.trim()) {
      resultsBox.innerHTML = "";
      resultsBox.classList.remove("visible");
      return;
    }
    if (!results.length) {
      resultsBox.innerHTML = '<div class="search-empty">No results for "' + escapeHTML(query) + '"</div>';
    } else {
      resultsBox.innerHTML = results.map(function(r) {
        var text = plainText(r.content || "");
        var snippet = highlight(excerpt(text, query), query);
        return '<a class="search-result" href="' + resultHref(r) + '">' +
          '<span class="result-title">' + escapeHTML(r.title) + "</span>" +
          (r.pageTitle ? '<span class="result-page">' + escapeHTML(r.pageTitle) + "</span>" : "") +
          '<span class="result-snippet">' + snippet + "</span></a>";
      }).join("");
    }
    resultsBox.classList.add("visible");
  }

  function localSearch(query) {
    if (!query.trim() || !index) return [];
    var q = query.toLowerCase();
    var out = [];
    for (var i = 0; i < index.length && out.length < maxResults; i++) {
      var owner = entrySection(index[i]);
      if (owner && owner !== section) continue;
      if (index[i].searchText.indexOf(q) !== -1) out.push(index[i]);
    }
    return out;
  }

  function loadIndex() {
    fetch(base + "/search-index.json")
      .then(function(r) { return r.json(); })
      .then(function(d) { index = d || []; })
      .catch(function() { index = []; });
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    try {
      socket = new WebSocket(proto + "//" + location.host + base + "/ws/search");
    } catch (e) {
      socket = null;
      return;
    }
    socket.onmessage = function(ev) {
      var msg = JSON.parse(ev.data);
      // Only the newest query may paint results.
      if (msg.type !== "results" || msg.seq !== seq) return;
      renderResults(msg.query, msg.results || []);
    };
    socket.onclose = function() { socket = null; };
  }

  loadIndex();
  if (live) connect();

  if (input) {
    input.addEventListener("input", function() {
      var query = input.value;
      seq++;
      if (!query.trim()) {
        renderResults("", []);
        return;
      }
      if (socket && socket.readyState === WebSocket.OPEN) {
        socket.send(JSON.stringify({ seq: seq, query: query, section: section }));
      } else {
        renderResults(query, localSearch(query));
      }
    });
  }

  function clearSearch() {
    if (!input) return;
    input.value = "";
    input.blur();
    seq++;
    renderResults("", []);
  }

  document.addEventListener("mousedown", function(e) {
    if (resultsBox && input && !resultsBox.contains(e.target) && e.target !== input) {
      if (resultsBox.classList.contains("visible")) clearSearch();
    }
  });

  // ===== Keyboard shortcuts =====
  document.addEventListener("keydown", function(e) {
    var tagName = (e.target && e.target.tagName) || "";
    if (e.key === "/" && tagName !== "INPUT" && tagName !== "TEXTAREA") {
      e.preventDefault();
      if (input) input.focus();
    }
    if (e.key === "Escape") {
      clearSearch();
      closeSidebar();
      closeTOC();
    }
  });

  // ===== Hash-anchor scroller =====
  var cfg = {
    initialDelay: parseInt(data.initialDelay || "500", 10),
    navigateDelay: parseInt(data.navigateDelay || "100", 10),
    retryInterval: parseInt(data.retryInterval || "200", 10),
    maxRetries: parseInt(data.maxRetries || "10", 10),
    headerOffset: parseInt(data.headerOffset || "100", 10)
  };
  var generation = 0;
  var timer = null;
  var state = "idle";

  function pagePath(slug) {
    return base + "/" + section + (slug === "home" ? "" : "/" + slug);
  }

  // Resolves to {slug, href} of the page carrying the fragment, or null.
  function pageWithAnchor(fragment) {
    if (live) {
      return fetch(base + "/api/anchors/" + encodeURIComponent(fragment) + "?section=" + encodeURIComponent(section))
        .then(function(r) { return r.ok ? r.json() : null; })
        .then(function(d) {
          if (!d) return null;
          return { slug: d.section === section ? d.slug : d.section + "/" + d.slug, href: base + d.path };
        })
        .catch(function() { return null; });
    }
    var found = null;
    (index || []).some(function(e) {
      var p = e.path || "";
      if (p.slice(-(fragment.length + 1)) === "#" + fragment) {
        found = { slug: e.id.split("-section-")[0], href: base + p };
        return true;
      }
      return false;
    });
    return Promise.resolve(found);
  }

  function attempt(token, fragment, retries) {
    if (token !== generation || state !== "locating") return;
    var el = document.getElementById(fragment);
    if (el) {
      state = "scrolling";
      var top = el.getBoundingClientRect().top + window.pageYOffset - cfg.headerOffset;
      window.scrollTo({ top: Math.max(0, top), behavior: "smooth" });
      state = "idle";
      timer = null;
      return;
    }
    if (retries < cfg.maxRetries) {
      timer = setTimeout(function() { attempt(token, fragment, retries + 1); }, cfg.retryInterval);
      return;
    }
    state = "failed";
    timer = null;
    if (window.console) console.warn("anchor not found: #" + fragment);
  }

  function begin(hash, initial) {
    var fragment = (hash || "").replace(/^#/, "");
    generation++;
    if (timer) { clearTimeout(timer); timer = null; }
    if (!fragment) { state = "idle"; return; }
    var token = generation;
    var delay = initial ? cfg.initialDelay : cfg.navigateDelay;

    if (document.getElementById(fragment)) {
      state = "locating";
      timer = setTimeout(function() { attempt(token, fragment, 0); }, delay);
      return;
    }
    state = "redirecting";
    pageWithAnchor(fragment).then(function(target) {
      if (token !== generation) return;
      if (target && target.slug !== data.page) {
        location.href = target.href;
        return;
      }
      state = "locating";
      timer = setTimeout(function() { attempt(token, fragment, 0); }, delay);
    });
  }

  window.addEventListener("hashchange", function() { begin(location.hash, false); });
  window.addEventListener("beforeunload", function() {
    generation++;
    if (timer) clearTimeout(timer);
  });
  if (location.hash) begin(location.hash, true);
})();
`

// Stylesheet returns the site stylesheet.
func Stylesheet() string { return cssContent }

// Script returns the browser script.
func Script() string { return jsContent }
