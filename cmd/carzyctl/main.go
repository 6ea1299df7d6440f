package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
	"github.com/ganeshpawar09/CarZy-Admin/internal/app"
	"github.com/ganeshpawar09/CarZy-Admin/internal/config"
	"github.com/ganeshpawar09/CarZy-Admin/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	container, err := app.NewContainer(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize")
	}

	command := "login"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx := context.Background()
	switch command {
	case "login":
		runLogin(ctx, container)
	case "employee":
		runEmployee(ctx, container)
	case "admin":
		runAdmin(ctx, container)
	case "car":
		runCar(ctx, container)
	case "whoami":
		runWhoami(container)
	case "logout":
		if err := container.Sessions.Clear(); err != nil {
			container.Logger.WithError(err).Fatal("Failed to clear session")
		}
		fmt.Println("Logged out.")
	default:
		fmt.Fprintf(os.Stderr, "usage: carzyctl [login|employee|admin|car <id>|whoami|logout]\n")
		os.Exit(2)
	}
}

// runLogin drives the interactive OTP login flow and lands on the screen
// the redirect picks.
func runLogin(ctx context.Context, c *app.Container) {
	scanner := bufio.NewScanner(os.Stdin)
	routes := make(chan domain.Route, 1)

	flow := c.NewAuthFlow(
		func(route domain.Route) { routes <- route },
		domain.FlowEventFunc(func(event domain.FlowEvent) {
			if event.EventType == domain.CountdownTickEvent && event.Countdown == 0 {
				fmt.Println("You can request a new code now (type 'resend').")
			}
		}),
	)
	defer flow.Close()

	if flow.Resume() {
		fmt.Println("Welcome back.")
	}

	for {
		switch flow.Step() {
		case services.StepPhoneInput:
			phone := prompt(scanner, "Phone number (+91): ")
			if err := flow.SubmitPhone(ctx, phone); err != nil {
				fmt.Println(flow.Err())
				continue
			}
			fmt.Printf("We've sent a 4-digit code to +91 %s\n", phone)

		case services.StepOTPVerification:
			input := prompt(scanner, "Enter OTP ('resend' / 'change'): ")
			switch input {
			case "resend":
				if err := flow.Resend(ctx); err != nil {
					fmt.Println(err.Error())
				} else {
					fmt.Println("A new code is on its way.")
				}
			case "change":
				if err := flow.ChangeNumber(); err != nil {
					fmt.Println(err.Error())
				}
			default:
				if err := flow.SubmitOTP(ctx, input); err != nil {
					fmt.Println(flow.Err())
				}
			}

		case services.StepNameEntry:
			name := prompt(scanner, "Welcome to CarZy! Your full name: ")
			if err := flow.SubmitName(ctx, name); err != nil {
				fmt.Println(flow.Err())
			}

		case services.StepSuccess:
			fmt.Println("Verification successful. Redirecting...")
			route := <-routes
			switch route {
			case domain.RouteAdmin:
				runAdmin(ctx, c)
			case domain.RouteEmployee:
				runEmployee(ctx, c)
			default:
				session := flow.Session()
				fmt.Printf("Hi %s, you're logged in. Rent. Ride. Repeat!\n", session.FullName)
			}
			return
		}
	}
}

// runEmployee is the verification console: pending lists plus
// approve/reject commands.
func runEmployee(ctx context.Context, c *app.Container) {
	warnIfTokenExpired(c)

	review, err := c.Review()
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if err := review.Refresh(ctx); err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("Welcome, %s\n", review.Employee().FullName)
	printPending(review)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fields := strings.Fields(prompt(scanner, "employee> "))
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "refresh":
			if err = review.Refresh(ctx); err == nil {
				printPending(review)
			}
		case "user":
			err = showUserVerification(review, fields[1:])
		case "car":
			err = showCarVerification(ctx, c, review, fields[1:])
		case "approve-user":
			if id, argErr := parseID(fields[1:]); argErr != nil {
				err = argErr
			} else if err = review.ApproveUser(ctx, id); err == nil {
				fmt.Println("User verification approved successfully")
			}
		case "reject-user":
			if id, argErr := parseID(fields[1:]); argErr != nil {
				err = argErr
			} else if err = review.RejectUser(ctx, id, strings.Join(fields[2:], " ")); err == nil {
				fmt.Println("User verification rejected successfully")
			}
		case "approve-car":
			if id, argErr := parseID(fields[1:]); argErr != nil {
				err = argErr
			} else if err = review.ApproveCar(ctx, id); err == nil {
				fmt.Println("Car verification approved successfully")
			}
		case "reject-car":
			if id, argErr := parseID(fields[1:]); argErr != nil {
				err = argErr
			} else if err = review.RejectCar(ctx, id, strings.Join(fields[2:], " ")); err == nil {
				fmt.Println("Car verification rejected successfully")
			}
		case "exit", "quit":
			return
		default:
			fmt.Println("commands: refresh, user <id>, car <id>, approve-user <id>, reject-user <id> <reason>, approve-car <id>, reject-car <id> <reason>, exit")
		}
		if err != nil {
			fmt.Println(err.Error())
		}
	}
}

func printPending(review *services.ReviewService) {
	users := review.PendingUsers()
	fmt.Println("\nUser Verifications")
	if len(users) == 0 {
		fmt.Println("  No pending user verifications found")
	}
	for _, v := range users {
		fmt.Printf("  #%d  user %d  submitted %s\n", v.ID, v.UserID, v.CreatedAt.Format("Jan 2, 2006"))
	}

	cars := review.PendingCars()
	fmt.Println("Car Verifications")
	if len(cars) == 0 {
		fmt.Println("  No pending car verifications found")
	}
	for _, v := range cars {
		fmt.Printf("  #%d  %s  submitted %s\n", v.ID, v.CarNumber, v.CreatedAt.Format("Jan 2, 2006"))
	}
	fmt.Println()
}

func showUserVerification(review *services.ReviewService, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	v, err := review.OpenUser(id)
	if err != nil {
		return err
	}
	fmt.Printf("Verification #%d for user %d\n  License:  %s\n  Passport: %s\n", v.ID, v.UserID, v.LicensePhotoURL, v.PassportPhotoURL)
	return nil
}

func showCarVerification(ctx context.Context, c *app.Container, review *services.ReviewService, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	target, err := review.OpenCar(id)
	if err != nil {
		return err
	}
	view, err := c.Catalog.LoadCarScreen(ctx, target.CarID, target.VerificationID, target.ReviewMode)
	if err != nil {
		return err
	}
	printCarView(view)
	return nil
}

func runAdmin(ctx context.Context, c *app.Container) {
	warnIfTokenExpired(c)

	stats, err := c.Dashboard.Stats(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("Total users:    %d\n", stats.Users.TotalUsers)
	fmt.Printf("Total cars:     %d\n", stats.Cars.TotalCars)
	fmt.Printf("Total bookings: %d\n", stats.Bookings.TotalBookings)
	fmt.Printf("Revenue:        $%.2f\n", stats.Financials.TotalTransactionAmount)
	fmt.Printf("Booking hours:  %.0f\n", stats.Bookings.TotalBookingTimeHours)

	fmt.Println("Bookings by status:")
	for status, count := range stats.Bookings.StatusCounts {
		fmt.Printf("  %s: %d\n", services.HumanizeKey(status), count)
	}
	fmt.Println("Cars by fuel type:")
	for fuel, count := range stats.Cars.CarsByFuelType {
		fmt.Printf("  %s: %d\n", services.HumanizeKey(fuel), count)
	}
	fmt.Println("User growth (last six months):")
	for _, point := range stats.Users.UserGrowthLastSixMonths {
		fmt.Printf("  %s: %d\n", point.Month, point.Count)
	}
}

func runCar(ctx context.Context, c *app.Container) {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: carzyctl car <id>")
		os.Exit(2)
	}
	id, err := strconv.ParseUint(os.Args[2], 10, 32)
	if err != nil {
		fmt.Fprintln(os.Stderr, "car id must be a number")
		os.Exit(2)
	}

	view, err := c.Catalog.LoadCarScreen(ctx, uint(id), 0, false)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	printCarView(view)
}

func printCarView(view *services.CarView) {
	fmt.Printf("%s (%d)  %s / %s  %d seats\n", view.Name, view.Car.ManufactureYear, view.Car.FuelType, view.Car.Transmission, view.Car.Seats)
	fmt.Printf("Rating %.1f (%d reviews)\n", view.Car.CarRating, view.Car.NoOfCarRating)
	fmt.Printf("4-hour slot: %.0f + %.0f trip protection\n", view.BasePrice, view.TripProtectionFee)
	if len(view.Features) > 0 {
		names := make([]string, 0, len(view.Features))
		for _, f := range view.Features {
			names = append(names, f.Name)
		}
		fmt.Printf("Features: %s\n", strings.Join(names, ", "))
	}
	for _, image := range view.Images {
		fmt.Printf("Image: %s\n", image)
	}
	if view.Documents != nil {
		fmt.Println("Verification documents:")
		fmt.Printf("  RC:        %s (expires %s)\n", view.Documents.RCImageURL, view.Documents.RCExpiryDate.Format("Jan 2, 2006"))
		fmt.Printf("  PUC:       %s (expires %s)\n", view.Documents.PUCImageURL, view.Documents.PUCExpiryDate.Format("Jan 2, 2006"))
		fmt.Printf("  Insurance: %s (expires %s)\n", view.Documents.InsuranceImageURL, view.Documents.InsuranceExpiryDate.Format("Jan 2, 2006"))
	}
}

func runWhoami(c *app.Container) {
	session := c.Sessions.Load()
	if session == nil {
		fmt.Println("Not logged in.")
		return
	}
	fmt.Printf("%s (%s), phone %s\n", session.FullName, session.UserType, session.MobileNumber)
	warnIfTokenExpired(c)
}

// warnIfTokenExpired gives an early heads-up that the platform will
// reject calls; the platform remains the authority either way.
func warnIfTokenExpired(c *app.Container) {
	session := c.Sessions.Load()
	if session == nil || session.Token == "" {
		return
	}
	info, err := c.Tokens.Inspect(session.Token)
	if err != nil {
		return
	}
	if info.Expired(time.Now()) {
		fmt.Println("Your login token has expired; please run 'carzyctl login' again.")
	}
}

func parseID(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("verification id is required")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("verification id must be a number")
	}
	return uint(id), nil
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(scanner.Text())
}
