// hashpass imprime el hash bcrypt de una contraseña para dar de alta usuarios.
//
// Uso: go run ./cmd/hashpass <password>
// Sin argumentos lee la contraseña de la primera línea de stdin.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/rentalops/internal/application/auth"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(os.Stderr, "Leer password: %v\n", err)
			os.Exit(1)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "La contraseña debe tener al menos 8 caracteres")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
