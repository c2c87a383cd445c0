// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/tomtom215/spawnwatch/internal/logging"
)

const defaultLookback = 15 * time.Minute

func (h *Handler) recentLookback() time.Duration {
	if h.config == nil || h.config.Query.RecentLookback <= 0 {
		return defaultLookback
	}
	return h.config.Query.RecentLookback
}

func (h *Handler) scannedLookback() time.Duration {
	if h.config == nil || h.config.Query.ScannedLookback <= 0 {
		return defaultLookback
	}
	return h.config.Query.ScannedLookback
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Spawnwatch</title>
<style>
html, body, #map { height: 100%; margin: 0; }
#fixed { display: {{.IsFixed}}; position: absolute; top: 8px; left: 50%; background: #fff; padding: 4px 8px; }
</style>
</head>
<body>
<div id="fixed">Location searching is turned off</div>
<div id="map"></div>
<script>
var origin = {lat: {{.Lat}}, lng: {{.Lng}}};
var markers = {};
function refresh(map) {
  var b = map.getBounds();
  if (!b) { return; }
  var q = "swLat=" + b.getSouthWest().lat() + "&swLng=" + b.getSouthWest().lng() +
          "&neLat=" + b.getNorthEast().lat() + "&neLng=" + b.getNorthEast().lng();
  fetch("raw_data?" + q).then(function (r) { return r.json(); }).then(function (data) {
    (data.pokemons || []).forEach(function (p) {
      if (markers[p.encounter_id]) { return; }
      markers[p.encounter_id] = new google.maps.Marker({
        map: map, position: {lat: p.latitude, lng: p.longitude},
        title: p.pokemon_name + " until " + new Date(p.disappear_time).toLocaleTimeString()
      });
    });
  });
}
function initMap() {
  var map = new google.maps.Map(document.getElementById("map"), {center: origin, zoom: 16});
  if (document.getElementById("fixed").style.display !== "inline") {
    map.addListener("click", function (e) {
      var body = new URLSearchParams({lat: e.latLng.lat(), lon: e.latLng.lng()});
      fetch("next_loc", {method: "POST", body: body});
    });
  }
  map.addListener("idle", function () { refresh(map); });
  setInterval(function () { refresh(map); }, 5000);
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var sock = new WebSocket(proto + location.host + "/ws");
  sock.onmessage = function () { refresh(map); };
}
</script>
<script async src="https://maps.googleapis.com/maps/api/js?key={{.GMapsKey}}&callback=initMap"></script>
</body>
</html>
`))

var mobileTemplate = template.Must(template.New("mobile").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Nearby Pokemon</title>
</head>
<body>
<p>Origin: <a href="https://maps.google.com/?q={{.OriginLat}},{{.OriginLng}}">{{.OriginLat}}, {{.OriginLng}}</a></p>
<table>
<tr><th>Pokemon</th><th>Direction</th><th>Distance</th><th>Time left</th></tr>
{{range .Pokemon}}<tr>
<td><a href="https://maps.google.com/?q={{.Latitude}},{{.Longitude}}">{{.Name}}</a></td>
<td>{{.CardDir}}</td>
<td>{{.Distance}} m</td>
<td>{{.TimeToDisappear}}</td>
</tr>
{{else}}<tr><td colspan="4">No pokemon nearby</td></tr>
{{end}}</table>
</body>
</html>
`))

// renderHTML executes tmpl into a buffer so a template error never leaves a
// half-written page behind.
func renderHTML(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data interface{}) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logging.CtxErr(r.Context(), err).Str("template", tmpl.Name()).Msg("Failed to render page")
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to render page", nil)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Error().Err(err).Msg("Failed to write HTML response")
	}
}
