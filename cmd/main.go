package main

import (
	"github.com/corray333/backend-labs/admin/internal/app"
	"github.com/corray333/backend-labs/admin/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
