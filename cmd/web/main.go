// @title           User Settings API
// @version         1.0
// @description     Сервис настроек каналов связи пользователя: подтверждение и активация каналов email, diia и inbox (документация Swagger).
// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "settings_backend/internal/app"

func main() {
	app.Run()
}
