package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/global-ministries/global-connect-sub001/internal/auth"
	"github.com/global-ministries/global-connect-sub001/internal/config"
	"github.com/global-ministries/global-connect-sub001/internal/database"
	"github.com/global-ministries/global-connect-sub001/internal/domain"
	"github.com/global-ministries/global-connect-sub001/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		printMenu()
		fmt.Print("Elige una opción: ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch input {
		case "1":
			migrateSchema(db)
		case "2":
			seedData(db)
		case "3":
			issueToken(cfg, db, reader)
		case "4":
			truncateImportTables(db, reader)
		case "0":
			fmt.Println("Saliendo...")
			os.Exit(0)
		default:
			fmt.Println("Opción inválida")
		}

		fmt.Println()
		fmt.Print("Presiona Enter para continuar...")
		reader.ReadString('\n')
	}
}

func printMenu() {
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("    GLOBAL CONNECT DATABASE CLI")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("1. Migrar schema + roles del sistema")
	fmt.Println("2. Sembrar datos de ejemplo (temporadas, segmentos, director)")
	fmt.Println("3. Emitir token de desarrollo")
	fmt.Println("4. Vaciar tablas de importación (grupos y miembros)")
	fmt.Println("0. Salir")
	fmt.Println()
	fmt.Println("----------------------------------------")
}

func migrateSchema(db *gorm.DB) {
	fmt.Println()
	fmt.Println("--- Migrar Schema ---")

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrando schema: %v\n", err)
		return
	}
	fmt.Println("Creando roles del sistema...")
	if err := database.SeedRoles(db); err != nil {
		fmt.Printf("Error creando roles: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Migración completada!")
}

func seedData(db *gorm.DB) {
	fmt.Println()
	fmt.Println("--- Datos de Ejemplo ---")

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := database.SeedRoles(tx); err != nil {
			return err
		}

		for _, nombre := range []string{"2024", "2025"} {
			t := domain.Temporada{Nombre: nombre, Activa: nombre == "2025"}
			if err := tx.Where(domain.Temporada{Nombre: nombre}).FirstOrCreate(&t).Error; err != nil {
				return fmt.Errorf("temporada %s: %w", nombre, err)
			}
		}

		segmentos := map[string]*domain.Segmento{}
		for _, nombre := range []string{"Jóvenes", "Adultos", "Matrimonios", "Niños"} {
			s := domain.Segmento{Nombre: nombre}
			if err := tx.Where(domain.Segmento{Nombre: nombre}).FirstOrCreate(&s).Error; err != nil {
				return fmt.Errorf("segmento %s: %w", nombre, err)
			}
			segmentos[nombre] = &s
		}

		admin := domain.Usuario{Nombre: "Admin", Apellido: "Global"}
		if err := tx.Where(domain.Usuario{Nombre: "Admin", Apellido: "Global"}).FirstOrCreate(&admin).Error; err != nil {
			return fmt.Errorf("usuario admin: %w", err)
		}
		if err := assignRol(tx, admin.ID, domain.RolClaveAdmin); err != nil {
			return err
		}

		director := domain.Usuario{Nombre: "Daniela", Apellido: "Rojas"}
		if err := tx.Where(domain.Usuario{Nombre: "Daniela", Apellido: "Rojas"}).FirstOrCreate(&director).Error; err != nil {
			return fmt.Errorf("usuario director: %w", err)
		}
		if err := assignRol(tx, director.ID, domain.RolClaveDirectorEtapa); err != nil {
			return err
		}
		sd := domain.SegmentoDirector{SegmentoID: segmentos["Jóvenes"].ID, UsuarioID: director.ID}
		if err := tx.Where(sd).FirstOrCreate(&sd).Error; err != nil {
			return fmt.Errorf("director de segmento: %w", err)
		}

		fmt.Printf("Admin:    %s\n", admin.ID)
		fmt.Printf("Director: %s (Jóvenes)\n", director.ID)
		return nil
	})
	if err != nil {
		fmt.Printf("Error sembrando datos: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Datos de ejemplo listos!")
}

func assignRol(tx *gorm.DB, usuarioID uuid.UUID, clave string) error {
	var rol domain.RolSistema
	if err := tx.Where("clave = ?", clave).First(&rol).Error; err != nil {
		return fmt.Errorf("rol %s: %w", clave, err)
	}
	ur := domain.UsuarioRol{UsuarioID: usuarioID, RolID: rol.ID}
	return tx.Where(ur).FirstOrCreate(&ur).Error
}

func issueToken(cfg *config.Config, db *gorm.DB, reader *bufio.Reader) {
	fmt.Println()
	fmt.Println("--- Token de Desarrollo ---")

	if cfg.IsProduction() {
		fmt.Println("No disponible en producción.")
		return
	}

	fmt.Print("ID del usuario: ")
	input, _ := reader.ReadString('\n')
	userID, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		fmt.Println("ID inválido")
		return
	}

	usuarioRepo := repository.NewUsuarioRepository(db)
	ctx := context.Background()

	usuario, err := usuarioRepo.FindByID(ctx, userID)
	if err != nil {
		fmt.Printf("Usuario no encontrado: %v\n", err)
		return
	}

	claves, err := usuarioRepo.GetRolClaves(ctx, userID)
	if err != nil {
		fmt.Printf("Error leyendo roles: %v\n", err)
		return
	}

	role := ""
	if len(claves) > 0 {
		role = claves[0]
	}

	token, err := auth.NewJWTService(cfg).GenerateAccessToken(userID, role)
	if err != nil {
		fmt.Printf("Error generando token: %v\n", err)
		return
	}

	fmt.Printf("Usuario: %s %s\n", usuario.Nombre, usuario.Apellido)
	fmt.Printf("Válido por: %s\n", cfg.JWT.AccessExpiry)
	fmt.Println()
	fmt.Println(token)
}

func truncateImportTables(db *gorm.DB, reader *bufio.Reader) {
	fmt.Println()
	fmt.Println("--- Vaciar Tablas de Importación ---")
	fmt.Print("Se eliminarán todos los grupos y sus miembros. ¿Continuar? (s/n): ")

	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(strings.ToLower(input)) != "s" {
		fmt.Println("Cancelado.")
		return
	}

	if err := db.Exec("TRUNCATE TABLE grupo_miembros, grupos CASCADE").Error; err != nil {
		fmt.Printf("Error vaciando tablas: %v\n", err)
		return
	}

	fmt.Println("Tablas vaciadas.")
}
