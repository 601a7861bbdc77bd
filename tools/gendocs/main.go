package main

import (
	"fmt"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra/doc"
	safearchive "github.com/xyrionz/SafeArchive/pkg/cli"
)

const fmTemplate = `---
title: "%s"
---
`

func main() {
	cmd := safearchive.New()
	cmd.DisableAutoGenTag = true
	err := doc.GenMarkdownTreeCustom(cmd, "docs/reference/command-line", filePrepender, linkHandler)
	if err != nil {
		log.Fatal(err)
	}
}

func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	return fmt.Sprintf(fmTemplate, strings.Replace(base, "_", " ", -1))
}

func linkHandler(name string) string {
	return name
}
