package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"traveldest/client/backend"
	"traveldest/client/cache"
	"traveldest/client/gallery"
	"traveldest/client/interaction"
	"traveldest/client/listing"
	"traveldest/client/models"
	"traveldest/client/notify"
	"traveldest/client/session"
)

type app struct {
	api     *backend.Client
	session *session.Store
	bus     *notify.Bus
	post    *interaction.Controller
	front   *gallery.Window // front-page slider
}

func main() {
	config, err := LoadAppConfig("config.yaml")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err.Error())
	}
	InitLogger(config.LogFile)

	ctx := context.Background()

	var c cache.Cache
	if config.Cache.Addr != "" {
		c, err = cache.NewRedisCache(ctx, config.Cache)
		if err != nil {
			log.Println("Error connecting to cache, continuing without it: ", err.Error())
			c = nil
		}
	}

	api, err := backend.NewClient(config.Backend, c)
	if err != nil {
		log.Fatal("Failed to create backend client: ", err.Error())
	}

	bus := notify.NewBus()
	bus.Subscribe(func(m models.Message) {
		if m.Success {
			fmt.Println("OK:", m.Text)
		} else {
			fmt.Println("ERROR:", m.Text)
		}
	})

	store := session.NewStore(api)
	store.Refresh(ctx)
	store.ObserveLoginStatus(func(loggedIn bool) {
		log.Printf("session: logged in = %v", loggedIn)
	})

	a := &app{
		api:     api,
		session: store,
		bus:     bus,
		post:    interaction.NewController(api, store, bus),
	}
	a.run(ctx)
}

func (a *app) run(ctx context.Context) {
	fmt.Println("traveldest client - type 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return
		}
		a.dispatch(ctx, cmd, args, line)
	}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string, line string) {
	switch cmd {
	case "help":
		printHelp()
	case "whoami":
		if name := a.session.CurrentUsername(); name != nil {
			fmt.Println(*name)
		} else {
			fmt.Println("not logged in")
		}
	case "login":
		if len(args) != 2 {
			fmt.Println("usage: login <username> <password>")
			return
		}
		resp, err := a.session.Login(ctx, models.Credentials{Username: args[0], Password: args[1]})
		if err != nil {
			a.bus.Show(backend.UserMessage(err), false)
			return
		}
		a.bus.Show(resp.Message, true)
	case "logout":
		resp, err := a.session.Logout(ctx)
		if err != nil {
			a.bus.Show(backend.UserMessage(err), false)
			return
		}
		a.bus.Show(resp.Message, true)
	case "register":
		// register <first> <last> <username> <password> <confirm> <country>
		if len(args) < 6 {
			fmt.Println("usage: register <first> <last> <username> <password> <confirm> <country>")
			return
		}
		reg := models.Registration{
			FirstName: args[0],
			LastName:  args[1],
			Username:  args[2],
			Password:  args[3],
			Country:   strings.Join(args[5:], " "),
		}
		if err := checkRegistration(reg, args[4]); err != nil {
			a.bus.Show(err.Error(), false)
			return
		}
		resp, err := a.api.Register(ctx, reg)
		if err != nil {
			a.bus.Show(backend.UserMessage(err), false)
			return
		}
		a.bus.Show(resp.Message, true)
	case "countries":
		countries, err := a.api.Countries(ctx)
		if err != nil {
			a.bus.Show(backend.UserMessage(err), false)
			return
		}
		listing.SortCountries(countries)
		for _, c := range countries {
			fmt.Printf("%s %s\n", c.Flag, c.Name)
		}
	case "destinations":
		a.showDestinations(ctx, strings.Join(args, " "), "")
	case "mine":
		name := a.session.CurrentUsername()
		if name == nil {
			a.bus.Show("Error retrieving username. Please log in again to continue.", false)
			return
		}
		a.showDestinations(ctx, strings.Join(args, " "), *name)
	case "slider":
		images, err := a.api.SliderImages(ctx)
		if err != nil {
			a.bus.Show(backend.UserMessage(err), false)
			return
		}
		a.front = gallery.New(images)
		printWindow(a.front)
	case "open":
		if len(args) != 1 {
			fmt.Println("usage: open <post-id>")
			return
		}
		if err := a.post.Load(ctx, args[0]); err != nil {
			return
		}
		printPost(a.post.Post())
	case "post":
		printPost(a.post.Post())
	case "gallery":
		a.galleryCmd(args)
	case "comment":
		a.post.AddComment(ctx, strings.TrimSpace(strings.TrimPrefix(line, "comment")))
	case "delcomment":
		if len(args) != 1 {
			fmt.Println("usage: delcomment <comment-id>")
			return
		}
		a.post.DeleteComment(ctx, args[0])
	case "edit":
		if len(args) != 1 {
			fmt.Println("usage: edit <comment-id>")
			return
		}
		a.startEdit(args[0])
	case "confirm":
		a.post.ConfirmEdit(ctx, strings.TrimSpace(strings.TrimPrefix(line, "confirm")))
	case "cancel":
		a.post.CancelEdit()
	case "like":
		a.post.ToggleLike(ctx)
	case "addpost":
		// addpost <title>|<country>|<city>|<main-image-url>|<content>
		a.addPost(ctx, strings.TrimSpace(strings.TrimPrefix(line, "addpost")))
	case "delpost":
		if len(args) != 1 {
			fmt.Println("usage: delpost <post-id>")
			return
		}
		resp, err := a.api.DeletePost(ctx, args[0])
		if err != nil {
			a.bus.Show(backend.UserMessage(err), false)
			return
		}
		a.bus.Show(resp.Message, true)
	default:
		fmt.Println("unknown command, type 'help'")
	}
}

func (a *app) showDestinations(ctx context.Context, query, author string) {
	destinations, err := a.api.Destinations(ctx)
	if err != nil {
		a.bus.Show(backend.UserMessage(err), false)
		return
	}
	if author != "" {
		destinations = listing.ByAuthor(destinations, author)
	}
	for _, d := range listing.FilterSort(destinations, query) {
		fmt.Printf("%-24s  %s %-16s  by %s  (%s)\n", d.Title, d.Flag, d.Country, d.Author, d.ID)
	}
}

func (a *app) startEdit(commentID string) {
	post := a.post.Post()
	if post == nil {
		fmt.Println("no post open")
		return
	}
	for _, c := range post.Comments {
		if c.ID == commentID {
			a.post.StartEdit(c.ID, c.Content)
			fmt.Printf("editing %s: %s\n", c.ID, a.post.TempContent())
			return
		}
	}
	fmt.Println("no such comment")
}

func (a *app) galleryCmd(args []string) {
	w := a.front
	if a.post.Window() != nil {
		w = a.post.Window()
	}
	if w == nil {
		fmt.Println("no gallery loaded")
		return
	}
	if len(args) == 1 {
		switch args[0] {
		case "prev":
			w.Advance(gallery.Prev)
		case "next":
			w.Advance(gallery.Next)
		}
	}
	printWindow(w)
}

func (a *app) addPost(ctx context.Context, spec string) {
	parts := strings.Split(spec, "|")
	if len(parts) != 5 {
		fmt.Println("usage: addpost <title>|<country>|<city>|<main-image-url>|<content>")
		return
	}
	name := a.session.CurrentUsername()
	if name == nil {
		a.bus.Show("Error retrieving username. Please log in again to continue.", false)
		return
	}
	post := models.Post{
		Title:     strings.TrimSpace(parts[0]),
		Author:    *name,
		Country:   models.Country{Name: strings.TrimSpace(parts[1])},
		City:      strings.TrimSpace(parts[2]),
		MainImage: strings.TrimSpace(parts[3]),
		Content:   strings.TrimSpace(parts[4]),
	}
	if err := checkPost(post); err != nil {
		a.bus.Show(err.Error(), false)
		return
	}
	resp, err := a.api.AddPost(ctx, post)
	if err != nil {
		a.bus.Show(backend.UserMessage(err), false)
		return
	}
	a.bus.Show(resp.Message, true)
}

func printPost(post *models.Post) {
	if post == nil {
		fmt.Println("no post open")
		return
	}
	fmt.Printf("%s - %s, %s (by %s)\n", post.Title, post.City, post.Country.Name, post.Author)
	fmt.Println(post.Content)
	fmt.Printf("likes: %d\n", len(post.Likes))
	for _, c := range post.Comments {
		fmt.Printf("  [%s] %s: %s\n", c.ID, c.Author, c.Content)
	}
}

func printWindow(w *gallery.Window) {
	for _, img := range w.Visible() {
		marker := " "
		if cur, ok := w.Current(); ok && cur.URL == img.URL {
			marker = "*"
		}
		fmt.Printf("%s %s (%s, %s)\n", marker, img.URL, img.City, img.Country)
	}
}

func printHelp() {
	fmt.Println(`commands:
  register <first> <last> <username> <password> <confirm> <country>
  login <username> <password> | logout | whoami
  countries | destinations [query] | mine [query] | slider
  open <post-id> | post | gallery [prev|next]
  comment <text> | delcomment <id> | edit <id> | confirm <text> | cancel
  like | addpost <title>|<country>|<city>|<image-url>|<content> | delpost <id>
  quit`)
}
