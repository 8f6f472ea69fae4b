// Package epubpack packages a publication tree into an EPUB container: a
// ZIP archive whose first entry is the uncompressed "mimetype" file,
// followed by deflate-compressed entries for every staged resource.
//
// # Exporting a publication
//
// A [Publication] supplies the resource tree and metadata; [Book] is a
// ready-made implementation backed by a folder or built in memory:
//
//	book, err := epubpack.OpenFolder("mybook/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := epubpack.NewExporter("mybook.epub", book).Write(); err != nil {
//	    log.Fatal(err)
//	}
//
// The export pipeline assembles the tree into a fresh staging folder,
// optionally obfuscates fonts and writes the META-INF/encryption.xml
// descriptor, then archives the staged tree. The staging folder is removed
// on every exit path, and a failed export never leaves a partial archive at
// the destination.
//
// # Font obfuscation
//
// The obfuscation algorithms themselves are external; the exporter
// dispatches to an [ObfuscateFunc] once per font resource that declares an
// algorithm URI. Fonts obfuscated with [AdobeObfuscationAlgorithm] are
// salted with the publication's UUID identifier, every other algorithm with
// the general publication identifier:
//
//	book.SetFontObfuscation("OEBPS/Fonts/serif.otf", epubpack.IDPFObfuscationAlgorithm)
//	exp := epubpack.NewExporter("mybook.epub", book)
//	exp.Obfuscate = myObfuscator
//	err := exp.Write()
//
// # Error Handling
//
// Failures carry the offending file's path in a [FileError] and match one
// of two kinds via errors.Is:
//   - [ErrCannotOpenFile] – a source file or the destination could not be opened
//   - [ErrCannotStoreFile] – writing into the archive failed
package epubpack
