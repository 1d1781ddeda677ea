/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/Ninibaz/Ninibaz-REMWASTE-Assignment/cmd"

func main() {
	cmd.Execute()
}
