package main

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	leaked := "TOKEN = '1234567890:" + "AAGmy7cxzIQddp2TlAYYkO-iNR1mRzCXmTE'\n"
	dashEnd := "bot(\"987654321:" + "AAGmy7cxzIQddp2TlAYYkO-iNR1mRzCXmT-\")\ntoken 123456789:" + "AAGmy7cxzIQddp2TlAYYkO-iNR1mRzCXm__ \n"

	fsys := fstest.MapFS{
		"main.go":              {Data: []byte("package main\n\nconst token = \"\"\n")},
		"bot/legacy.py":        {Data: []byte("import os\n" + leaked)},
		"bot/dash.go":          {Data: []byte(dashEnd)},
		"bot/long.txt":         {Data: []byte("1234567890:" + "AAGmy7cxzIQddp2TlAYYkO-iNR1mRzCXmTEx\n")},
		"vendor/x/leak.go":     {Data: []byte(leaked)},
		".git/config":          {Data: []byte(leaked)},
		"data/journal.db":      {Data: []byte(leaked)},
		"docs/example.md":      {Data: []byte("TELEGRAM_TOKEN=<token> demobot run\n")},
		"internal/a/short.txt": {Data: []byte("123:abc\n")},
	}

	findings, err := scan(fsys)
	require.NoError(t, err)
	assert.Equal(t, []finding{
		{Path: "bot/dash.go", Line: 1},
		{Path: "bot/dash.go", Line: 2},
		{Path: "bot/legacy.py", Line: 2},
	}, findings)
}
