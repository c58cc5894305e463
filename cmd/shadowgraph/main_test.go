package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOsm = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="-7.5500" lon="110.8000"/>
  <node id="2" lat="-7.5500" lon="110.8010"/>
  <node id="3" lat="-7.5500" lon="110.8020"/>
  <way id="100">
    <nd ref="1"/><nd ref="2"/><nd ref="3"/>
    <tag k="highway" v="residential"/>
  </way>
</osm>`

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	mapFile := filepath.Join(dir, "line.osm")
	require.NoError(t, os.WriteFile(mapFile, []byte(testOsm), 0o644))
	configFile := filepath.Join(dir, "shadowgraph.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("[storage]\npath = \"\"\n"), 0o644))

	out := &bytes.Buffer{}
	root := newRootCmd()
	root.SetOut(out)
	root.SetArgs([]string{"build", mapFile, "--config", configFile, "--workers", "2", "--export-dir", filepath.Join(dir, "out")})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "vertices: 2 (0 helper), edges: 2 (0 helper)")
	assert.Contains(t, out.String(), "handedness: ambiguous")
	_, err := os.Stat(filepath.Join(dir, "out", "default_edges.csv"))
	assert.NoError(t, err)
}

func TestBuildCommandBadNetworkType(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "shadowgraph.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("[storage]\npath = \"\"\n"), 0o644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"build", "x.osm", "--config", configFile, "--network-type", "boat"})
	assert.Error(t, root.Execute())
}
