package site

// pageTemplate is the html/template shared by every generated page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
<div class="header">
  <span class="project">{{.ProjectName}}</span>
  <a href="{{.BasePath}}index.html">Main Page</a>
  <a href="{{.BasePath}}files.html">Files</a>
</div>
<div class="contents">
<h1 class="title">{{.Title}}</h1>
{{.Content}}
</div>
<script src="{{.BasePath}}script.js"></script>
</body>
</html>
`

// cssContent styles directory tables, listings, member tables and
// collapsible sections.
const cssContent = `body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  font-size: 14px;
  color: #1f2328;
  margin: 0;
}
a { color: #0969da; text-decoration: none; }
a:hover { text-decoration: underline; }

.header {
  background: #f6f8fa;
  border-bottom: 1px solid #d0d7de;
  padding: 8px 16px;
}
.header .project { font-weight: 600; margin-right: 24px; }
.header a { margin-right: 12px; }
.contents { padding: 8px 24px 48px; }
h1.title { font-size: 22px; }

/* directory tree */
div.levels { margin-bottom: 8px; }
div.levels span[data-cmd] { cursor: pointer; color: #0969da; padding: 0 2px; }
table.directory { border-collapse: collapse; width: 100%; }
table.directory tr.even { background: #f6f8fa; }
table.directory td { padding: 2px 6px; vertical-align: top; }
span.arrow { cursor: pointer; display: inline-block; width: 16px; font-size: 80%; color: #8c959f; user-select: none; }
span.iconfopen, span.iconfclosed, span.icondoc { display: inline-block; width: 16px; height: 14px; margin-right: 4px; vertical-align: -2px; }
span.iconfopen::before { content: "\1F4C2"; font-size: 12px; }
span.iconfclosed::before { content: "\1F4C1"; font-size: 12px; }
span.icondoc::before { content: "\1F4C4"; font-size: 12px; }

/* collapsible sections */
.dynheader { cursor: pointer; user-select: none; }
.dynheader img { vertical-align: middle; }
.dynsummary { color: #57606a; font-style: italic; margin: 0 0 12px 24px; }

/* member tables */
table.memberdecls { border-collapse: collapse; margin-bottom: 24px; }
table.memberdecls td { padding: 2px 8px; font-family: ui-monospace, SFMono-Regular, Menlo, monospace; }
td.memItemLeft { text-align: right; color: #57606a; white-space: nowrap; }
tr.inherit_header td { cursor: pointer; color: #57606a; padding-top: 6px; }
tr.inherit_header img { vertical-align: middle; }
h2.groupheader { font-size: 16px; border-bottom: 1px solid #d0d7de; margin: 16px 0 4px; }

/* listings */
div.fragment {
  font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
  font-size: 13px;
  background: #f6f8fa;
  border: 1px solid #d0d7de;
  padding: 4px 0;
  overflow-x: auto;
}
div.line { white-space: pre; min-height: 16px; line-height: 16px; }
div.line.glow { background: #fff8c5; }
span.lineno { color: #8c959f; padding-right: 4px; margin-right: 8px; user-select: none; }
span.fold {
  display: inline-block;
  width: 12px;
  height: 12px;
  margin-left: 4px;
  background-repeat: no-repeat;
  background-position: center;
  vertical-align: -1px;
}
span.fold[data-cmd] { cursor: pointer; }
div.foldclosed a { padding: 0 4px; }

/* chroma token classes */
.k, .kd, .kn, .kr, .kt, .kc, .kp { color: #cf222e; }
.s, .s1, .s2, .sb, .sc, .sr, .dl { color: #0a3069; }
.c, .c1, .cm, .cp, .cs { color: #6e7781; font-style: italic; }
.m, .mi, .mf, .mh, .mo { color: #0550ae; }
.nf, .fm { color: #8250df; }
.nb, .bp { color: #953800; }
.o, .ow { color: #cf222e; }
`

// jsContent forwards clicks on interactive elements to the view API and
// swaps in the re-projected page body.
const jsContent = `(function() {
  function pagePath() {
    var p = window.location.pathname.replace(/^\/+/, '');
    return p === '' ? 'index.html' : p;
  }

  function refresh(page) {
    return fetch('/api/view/' + page + '/html', { credentials: 'same-origin' })
      .then(function(res) { return res.ok ? res.text() : null; })
      .then(function(body) {
        if (body !== null) {
          document.body.innerHTML = body;
        }
      });
  }

  document.addEventListener('click', function(ev) {
    var el = ev.target.closest('[data-cmd]');
    if (!el) {
      return;
    }
    ev.preventDefault();
    var cmd = { op: el.getAttribute('data-cmd') };
    var target = el.getAttribute('data-target');
    if (target) {
      cmd.target = target;
    }
    var level = el.getAttribute('data-level');
    if (level) {
      cmd.level = parseInt(level, 10);
    }
    var page = pagePath();
    fetch('/api/view/' + page, {
      method: 'POST',
      credentials: 'same-origin',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(cmd)
    }).then(function(res) {
      if (res.ok) {
        return refresh(page);
      }
    }).catch(function(err) {
      console.warn('docview: command failed', err);
    });
  });
})();
`

// plusSVG and minusSVG are the fold glyphs of source listings.
const plusSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="12" height="12" viewBox="0 0 12 12"><rect x="0.5" y="0.5" width="11" height="11" fill="#fff" stroke="#808080"/><path d="M3 6h6M6 3v6" stroke="#404040" stroke-width="1.2"/></svg>
`

const minusSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="12" height="12" viewBox="0 0 12 12"><rect x="0.5" y="0.5" width="11" height="11" fill="#fff" stroke="#808080"/><path d="M3 6h6" stroke="#404040" stroke-width="1.2"/></svg>
`
