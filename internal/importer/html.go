package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/collector/internal/model"
	"golang.org/x/net/html"
)

// Folder is a folder read from an import file. Key is a provisional
// identifier; ParentKey is empty for folders at the top of the file.
type Folder struct {
	Key         string
	ParentKey   string
	Name        string
	Description string
}

// Bookmark is a bookmark read from an import file. FolderKey is empty for
// bookmarks at the top of the file.
type Bookmark struct {
	Title       string
	Description string
	URL         string
	FolderKey   string
	CreatedAt   time.Time
}

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns folders + bookmarks.
// Folders are returned parents first.
func ParseHTMLBookmarks(r io.Reader) ([]Folder, []Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	var folders []Folder
	var bookmarks []Bookmark

	// Track current folder stack for hierarchy
	var folderStack []string
	pendingFolder := -1 // folder waiting to be pushed on next DL
	lastBookmark := -1  // bookmark a following DD describes

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition - get name from text content
				name := getTextContent(n)
				if name != "" {
					folders = append(folders, Folder{
						Key:       model.GenerateUUID(),
						ParentKey: top(folderStack),
						Name:      name,
					})

					// Pushed when we see the next DL
					pendingFolder = len(folders) - 1
					lastBookmark = -1
				}
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				// Parse ADD_DATE timestamp
				createdAt := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				bookmarks = append(bookmarks, Bookmark{
					Title:     title,
					URL:       href,
					FolderKey: top(folderStack),
					CreatedAt: createdAt,
				})
				lastBookmark = len(bookmarks) - 1
				pendingFolder = -1
				return // Don't recurse into A

			case "dd":
				// Description of the preceding folder or bookmark. A folder's
				// DL may be nested inside its DD, so keep recursing.
				desc := getDirectText(n)
				switch {
				case pendingFolder >= 0:
					folders[pendingFolder].Description = desc
				case lastBookmark >= 0:
					bookmarks[lastBookmark].Description = desc
					lastBookmark = -1
				}

			case "dl":
				// Definition list - marks folder contents
				pushedFolder := false
				if pendingFolder >= 0 {
					folderStack = append(folderStack, folders[pendingFolder].Key)
					pendingFolder = -1
					pushedFolder = true
				}
				lastBookmark = -1

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				lastBookmark = -1
				return // Don't recurse further, we handled children
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return folders, bookmarks, nil
}

func top(stack []string) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1]
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getDirectText returns the text of n's own text children, ignoring
// nested elements.
func getDirectText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
