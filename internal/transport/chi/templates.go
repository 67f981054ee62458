package chi

// ── Base layout ───────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{if .HasIndex}}{{.Index.Name}} · {{end}}MapVista</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px;line-height:1.5;height:100vh;display:flex;flex-direction:column}
a{color:#58a6ff;text-decoration:none}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:16px;align-items:center}
nav .brand{color:#f0f6fc;font-weight:700;font-size:15px}
nav .crumb{color:#8b949e}
.layout{flex:1;display:flex;min-height:0}
aside{width:300px;background:#161b22;border-right:1px solid #30363d;display:flex;flex-direction:column;min-height:0}
aside.collapsed{width:44px}
aside.collapsed .aside-body{display:none}
.aside-hdr{display:flex;align-items:center;justify-content:space-between;padding:8px 10px;border-bottom:1px solid #30363d}
.aside-body{overflow-y:auto;flex:1}
.idx{display:block;width:100%;text-align:left;background:none;border:none;border-bottom:1px solid #21262d;color:inherit;font-family:inherit;font-size:12px;padding:8px 12px;cursor:pointer}
.idx:hover{background:#21262d}
.idx.active{background:#1f6feb22;border-left:2px solid #1f6feb}
.idx .name{color:#f0f6fc;font-weight:600}
.idx .meta{color:#8b949e;font-size:11px}
main{flex:1;display:flex;flex-direction:column;min-width:0;padding:12px;gap:12px;overflow-y:auto}
h1{font-size:16px;font-weight:700;color:#f0f6fc}
h2{font-size:13px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.06em;margin-bottom:8px}
.cards{display:flex;gap:12px;flex-wrap:wrap}
.card{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:8px 14px;min-width:110px}
.card .val{font-size:18px;font-weight:700;color:#f0f6fc}
.card .lbl{font-size:11px;color:#8b949e}
.split{display:flex;gap:12px;min-height:500px}
.section{background:#161b22;border:1px solid #30363d;border-radius:6px;overflow:hidden;display:flex;flex-direction:column}
.section-hdr{padding:8px 12px;border-bottom:1px solid #30363d;font-size:11px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.05em;background:#0d1117;display:flex;justify-content:space-between}
#map{height:500px;flex:1;background:#0d1117}
.table-wrap{overflow:auto;max-height:500px}
table{width:100%;border-collapse:collapse;font-size:12px}
th{text-align:left;padding:0;border-bottom:1px solid #30363d;white-space:nowrap}
th button{background:none;border:none;color:#8b949e;font:inherit;font-weight:600;font-size:11px;text-transform:uppercase;letter-spacing:.05em;padding:6px 10px;cursor:pointer}
th button:hover{color:#c9d1d9}
td{padding:5px 10px;border-bottom:1px solid #21262d;white-space:nowrap}
tbody tr{cursor:pointer}
tbody tr:hover td{background:#21262d}
tbody tr.selected td{background:#1f6feb33}
.badge{display:inline-block;padding:1px 6px;border-radius:10px;font-size:10px;font-weight:600;background:#30363d;color:#c9d1d9}
.st-active,.st-delivered,.st-green{background:#56d364;color:#0d1117}
.st-in_transit,.st-pending,.st-yellow{background:#f59e0b;color:#0d1117}
.st-inactive,.st-cancelled,.st-red{background:#f87171;color:#0d1117}
.tag{display:inline-flex;gap:6px;align-items:center;padding:1px 6px;border-radius:4px;font-size:11px;background:#21262d;color:#c9d1d9;border:1px solid #30363d}
.tag button{background:none;border:none;color:#8b949e;cursor:pointer;font-family:inherit}
.mono{font-family:monospace;font-size:11px;color:#79c0ff}
.coord{color:#a78bfa}
.dim{color:#8b949e}
.ok{color:#56d364}
.warn{color:#f59e0b}
.err{color:#f87171}
.filters{display:flex;gap:8px;flex-wrap:wrap;align-items:center}
.filters select,.filters input,aside input{background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:4px;padding:3px 6px;font-size:12px;font-family:inherit}
.filters button,.btn{background:#1f6feb;border:none;color:#fff;padding:4px 12px;border-radius:4px;cursor:pointer;font-size:12px;font-family:inherit}
.btn.ghost{background:#21262d;border:1px solid #30363d;color:#c9d1d9}
.detail td:first-child{color:#8b949e;font-size:11px;text-transform:uppercase;width:140px}
.welcome{margin:auto;text-align:center;max-width:420px;color:#8b949e}
.welcome h1{margin-bottom:8px}
</style>
</head>
<body>
<nav>
  <span class="brand">🗺 MapVista</span>
  {{if .HasIndex}}<span class="crumb">/ {{.Index.Name}}</span>{{end}}
</nav>
<div class="layout">
{{template "sidebar" .}}
<main>
{{if .HasIndex}}{{template "content" .}}{{else}}{{template "welcome" .}}{{end}}
</main>
</div>
</body>
</html>
{{end}}
`

// ── Sidebar ───────────────────────────────────────────────────────────────────

const tmplSidebar = `
{{define "sidebar"}}
<aside{{if .SidebarCollapsed}} class="collapsed"{{end}}>
  <div class="aside-hdr">
    {{if not .SidebarCollapsed}}<h2 style="margin:0">Indexes</h2>{{end}}
    <form method="POST" action="/ui/sidebar"><button class="btn ghost" type="submit" title="Toggle sidebar">{{if .SidebarCollapsed}}»{{else}}«{{end}}</button></form>
  </div>
  <div class="aside-body">
    <form method="POST" action="/ui/catalog" style="padding:8px 10px">
      <input name="q" value="{{.CatalogTerm}}" placeholder="Search indexes" style="width:100%">
    </form>
    {{if .CatalogUnavailable}}<div class="err" style="padding:8px 12px">Catalog unavailable</div>{{end}}
    {{range .Catalog}}
    <form method="POST" action="/ui/index">
      <input type="hidden" name="index" value="{{.ID}}">
      <button class="idx{{if .Selected}} active{{end}}" type="submit">
        <div class="name">{{.Name}}{{if .HasGeo}} <span class="coord">●</span>{{end}}</div>
        <div class="meta"><span class="{{healthClass .Health}}">{{.Health}}</span> · {{fmtCount .DocCount}} docs{{if .Size}} · {{.Size}}{{end}}</div>
        <div class="meta">{{.Category}}{{if .LastUpdated}} · {{.LastUpdated}}{{end}}</div>
      </button>
    </form>
    {{else}}
    {{if not .CatalogUnavailable}}<div class="dim" style="padding:8px 12px">No indexes match</div>{{end}}
    {{end}}
  </div>
</aside>
{{end}}
`

// ── Welcome ───────────────────────────────────────────────────────────────────

const tmplWelcome = `
{{define "welcome"}}
<div class="welcome">
  <h1>Welcome to MapVista</h1>
  <p>Select an index from the sidebar to browse its records in a table and plot them on the map.</p>
</div>
{{end}}
`

// ── Dashboard ─────────────────────────────────────────────────────────────────

const tmplDashboard = `
{{define "content"}}
<h1>{{.Index.Name}} <span class="dim" style="font-size:12px;font-weight:400">{{.Index.ID}}</span></h1>
<div class="cards">
  <div class="card"><div class="val">{{fmtCount .Index.DocCount}}</div><div class="lbl">Documents</div></div>
  <div class="card"><div class="val">{{if .Index.Size}}{{.Index.Size}}{{else}}n/a{{end}}</div><div class="lbl">Size</div></div>
  <div class="card"><div class="val {{healthClass .Index.Health}}">{{.Index.Health}}</div><div class="lbl">Health</div></div>
  <div class="card"><div class="val">{{len .Map.Points}}</div><div class="lbl">On map</div></div>
</div>

<div class="filters">
  <form method="POST" action="/ui/search" class="filters">
    <input name="q" value="{{.Search}}" placeholder="Search all fields">
    <button type="submit">Search</button>
  </form>
  <form method="POST" action="/ui/filter" class="filters">
    <select name="field">
      <option value="">Field</option>
      {{range .Columns}}<option value="{{.Name}}">{{.Name}}</option>{{end}}
    </select>
    <input name="value" placeholder="contains">
    <button type="submit">Add filter</button>
  </form>
  {{range .Clauses}}
  <form method="POST" action="/ui/filter/remove" class="tag">
    <input type="hidden" name="i" value="{{.Index}}">
    {{.Field}}: {{.Substring}}<button type="submit" title="Remove filter">×</button>
  </form>
  {{end}}
</div>

<div class="split">
  <div class="section" style="flex:3;min-width:0">
    <div class="section-hdr">
      <span>Records</span>
      <span>{{if .Loading}}Loading…{{else}}Showing {{.Shown}} of {{.Total}} records{{end}}</span>
    </div>
    <div class="table-wrap">
      <table>
        <thead><tr>
          {{range .Columns}}
          <th><form method="POST" action="/ui/sort"><input type="hidden" name="field" value="{{.Name}}"><button type="submit">{{.Name}} {{.Arrow}}</button></form></th>
          {{end}}
        </tr></thead>
        <tbody>
          {{range .Rows}}
          <tr{{if .Selected}} class="selected"{{end}} onclick="selectRecord({{.ID}})">
            {{range .Cells}}<td>{{if .Class}}<span class="{{.Class}}">{{.Text}}</span>{{else}}{{.Text}}{{end}}</td>{{end}}
          </tr>
          {{else}}
          <tr><td class="dim" colspan="{{len .Columns}}">{{if .Loaded}}No records match{{else}}No records{{end}}</td></tr>
          {{end}}
        </tbody>
      </table>
    </div>
  </div>
  <div class="section" style="flex:2;min-width:320px">
    <div class="section-hdr">
      <span>Map</span>
      {{if .Excluded}}<span class="dim">{{.Excluded}} without coordinates</span>{{end}}
    </div>
    <div id="map"></div>
  </div>
</div>

{{if .HasRecord}}
<div class="section">
  <div class="section-hdr">
    <span>Record {{.RecordID}}</span>
    <form method="POST" action="/ui/record/clear"><button class="btn ghost" type="submit">Close</button></form>
  </div>
  <table class="detail">
    {{range .Record}}<tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>{{end}}
  </table>
</div>
{{end}}

<form id="record-form" method="POST" action="/ui/record" style="display:none"><input type="hidden" name="id" id="record-id"></form>

<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script>
var mapData = {{.Map}};
function selectRecord(id) {
  document.getElementById('record-id').value = id;
  document.getElementById('record-form').submit();
}
(function () {
  var map = L.map('map').setView([mapData.center.lat, mapData.center.lng], mapData.zoom);
  L.tileLayer(mapData.tileUrl, {maxZoom: 18, attribution: '&copy; OpenStreetMap contributors'}).addTo(map);
  mapData.points.forEach(function (p) {
    var selected = p.id === mapData.selected;
    L.circleMarker([p.lat, p.lng], {
      radius: selected ? 9 : 6,
      color: selected ? '#f59e0b' : '#1f6feb',
      fillOpacity: 0.8
    }).addTo(map).bindTooltip(p.label || p.id).on('click', function () { selectRecord(p.id); });
  });
})();
</script>
{{end}}
`
