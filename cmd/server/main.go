// @title           User Accounts API
// @version         1.0
// @description     User account service.
// @description     Registration, login with JWT access tokens and user CRUD.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения.
//
// Жизненный цикл сервера (конфиг, база, миграции, HTTP(S), graceful shutdown)
// реализован в пакете internal/server/cli, здесь только передача версии сборки.
// HTTP API документируется с помощью OpenAPI (Swagger), см. /swagger/index.html.
package main

import (
	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/cli"

	_ "github.com/IvanChernomyrdin/go-user-accounts/swagger/docs"
)

var (
	// buildVersion содержит версию приложения, передаваемую при сборке.
	buildVersion = "dev"
	// buildDate содержит дату сборки приложения.
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
