// token emite un JWT de personal firmado con JWT_SECRET para pruebas locales de la API.
//
// Uso: go run ./cmd/token <user_id> <rol>
// Roles: admin, recepcion, limpieza.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Hotel-api/pkg/config"
	"github.com/jhoicas/Hotel-api/pkg/jwt"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Uso: token <user_id> <admin|recepcion|limpieza>")
		os.Exit(2)
	}
	userID, role := os.Args[1], os.Args[2]
	switch role {
	case jwt.RoleAdmin, jwt.RoleRecepcion, jwt.RoleLimpieza:
	default:
		fmt.Fprintf(os.Stderr, "Rol desconocido: %s\n", role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
