package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillpress/epubpack"
)

var outputPath string

// rootCmd packages a prepared publication folder into an EPUB file.
var rootCmd = &cobra.Command{
	Use:   "epubpack <folder>",
	Short: "Package a publication folder into an EPUB container",
	Long: "Package a publication folder into an EPUB container.\n\n" +
		"The folder must hold a complete publication tree (an OPF package " +
		"document, optionally located via META-INF/container.xml). The " +
		"resulting archive starts with the required uncompressed mimetype " +
		"entry followed by a deflated entry per file.",
	Example: `  # Package mybook/ into mybook.epub
  epubpack mybook/

  # Package into an explicit destination
  epubpack mybook/ -o out/book.epub`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validatePack,
	RunE:    runPack,
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "destination .epub path (default: <folder>.epub)")
}

func validatePack(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runPack(cmd *cobra.Command, args []string) error {
	folder := filepath.Clean(args[0])

	dst := outputPath
	if dst == "" {
		dst = strings.TrimSuffix(folder, string(filepath.Separator)) + ".epub"
	}

	book, err := epubpack.OpenFolder(folder)
	if err != nil {
		return err
	}
	defer book.Close()

	slog.Info("packaging publication", "folder", folder, "opf", book.OPFPath(), "destination", dst)

	if err := epubpack.NewExporter(dst, book).Write(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", dst)
	return nil
}
