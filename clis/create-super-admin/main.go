// Seeds a super-admin account for the approval console. Reads the database
// settings from the same CREDCHAIN_DATABASE_* variables the server uses.
//
//	go run ./clis/create-super-admin -email admin@credchain.dev -password <secret>
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"credchain/src/config"
	"credchain/src/database"
	"credchain/src/model"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "super-admin email (required)")
	password := flag.String("password", "", "super-admin password (required)")
	name := flag.String("name", "Super Admin", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(*password) < 8 {
		fail("password must be at least 8 characters")
	}

	var dbCfg config.Database
	if err := envconfig.Process("CREDCHAIN_DATABASE", &dbCfg); err != nil {
		fail("reading database config: %v", err)
	}

	db, err := database.ConnectToDatabase(dbCfg)
	if err != nil {
		fail("connecting to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		fail("running migrations: %v", err)
	}

	var existing model.SuperAdmin
	err = db.Where("email = ?", *email).First(&existing).Error
	if err == nil {
		fail("a super admin with email %s already exists", *email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		fail("checking existing accounts: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fail("hashing password: %v", err)
	}

	admin := model.SuperAdmin{
		Name:         *name,
		Email:        *email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		fail("creating super admin: %v", err)
	}

	fmt.Printf("Super admin %s created (id=%d)\n", admin.Email, admin.Id)
}

func fail(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}
