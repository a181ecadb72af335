package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sanskardagade/CampusConnectMain-sub001/config"
	"github.com/sanskardagade/CampusConnectMain-sub001/database"
	"github.com/sanskardagade/CampusConnectMain-sub001/routes"
)

// @title           CampusConnect Leave & Exit API
// @version         1.0
// @description     Echo + PostgreSQL — leave approval / campus exit tracking
// @BasePath        /
func main() {
	cfg := config.Load()

	// เชื่อมต่อฐานข้อมูล (ถ้า DB ยังไม่ขึ้น โปรแกรมจะ error ทันที — เหมาะสำหรับ early fail)
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.RegisterRoutes(e)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
